package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/TranSophie/ericbryantphd.com/internal/bibtex"
	"github.com/TranSophie/ericbryantphd.com/internal/config"
	"github.com/TranSophie/ericbryantphd.com/internal/library"
)

const (
	// ListTitleMaxLen truncates titles in list output.
	ListTitleMaxLen = 70
	// ListAuthorMaxCount caps authors shown per entry before "et al.".
	ListAuthorMaxCount = 3
)

var (
	listDir  string
	listFile string
)

func init() {
	listCmd.Flags().StringVar(&listDir, "dir", library.DefaultDir, "Bibliography directory")
	listCmd.Flags().StringVar(&listFile, "file", library.DefaultFile, "Bibliography file name")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bibliography entries by citation key",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	dir := listDir
	if !cmd.Flags().Changed("dir") && cfg.BibDir != "" {
		dir = cfg.BibDir
	}
	file := listFile
	if !cmd.Flags().Changed("file") && cfg.BibFile != "" {
		file = cfg.BibFile
	}

	lib, err := bibtex.Load(filepath.Join(dir, file))
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(lib))
	for key := range lib {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		rec := lib[key]
		fmt.Printf("%s\n", key)
		if title := rec.Get("title"); title != "" {
			fmt.Printf("  %s\n", truncateString(title, ListTitleMaxLen))
		}
		if summary := entrySummary(rec); summary != "" {
			fmt.Printf("  %s\n", summary)
		}
	}
	fmt.Printf("%d entries\n", len(keys))
	return nil
}

// entrySummary renders the "authors (year)" line for an entry, omitting
// whichever part is missing.
func entrySummary(rec bibtex.Record) string {
	authors := formatAuthorsShort(rec.Get("author"), ListAuthorMaxCount)
	year := rec.Get("year")

	switch {
	case authors != "" && year != "":
		return fmt.Sprintf("%s (%s)", authors, year)
	case authors != "":
		return authors
	case year != "":
		return "(" + year + ")"
	}
	return ""
}

// formatAuthorsShort abbreviates an " and "-delimited author list, adding
// "et al." for more than maxCount names.
func formatAuthorsShort(authorList string, maxCount int) string {
	if authorList == "" {
		return ""
	}

	names := strings.Split(authorList, " and ")
	if len(names) > maxCount {
		names = append(names[:maxCount], "et al.")
	}
	return strings.Join(names, ", ")
}

// truncateString truncates a string to maxLen runes, adding "..." if
// truncated.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
