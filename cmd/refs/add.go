package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TranSophie/ericbryantphd.com/internal/cache"
	"github.com/TranSophie/ericbryantphd.com/internal/config"
	"github.com/TranSophie/ericbryantphd.com/internal/library"
	"github.com/TranSophie/ericbryantphd.com/internal/pubmed"
)

var (
	addDir   string
	addFile  string
	addPrint bool
)

func init() {
	addCmd.Flags().StringVar(&addDir, "dir", library.DefaultDir, "Bibliography directory")
	addCmd.Flags().StringVar(&addFile, "file", library.DefaultFile, "Bibliography file name")
	addCmd.Flags().BoolVar(&addPrint, "print", true, "Print newly added entries as BibTeX")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <pmid>...",
	Short: "Fetch PubMed records and merge them into the bibliography",
	Long: `Fetch the records for the given PubMed IDs and merge them into the
bibliography file.

PMIDs already in the library are skipped without a lookup. New entries get
a deterministic citation key; if the key already exists the old entry is
kept unchanged.

Examples:
  refs add 31119198
  refs add 31119198 26951683 --dir ~/site --file library.bib
  refs add 31119198 --print=false`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	dir := addDir
	if !cmd.Flags().Changed("dir") && cfg.BibDir != "" {
		dir = cfg.BibDir
	}
	file := addFile
	if !cmd.Flags().Changed("file") && cfg.BibFile != "" {
		file = cfg.BibFile
	}

	apiKey := os.Getenv("NCBI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.NCBIAPIKey
	}

	var clientOpts []pubmed.ClientOption
	if apiKey != "" {
		clientOpts = append(clientOpts, pubmed.WithAPIKey(apiKey))
	}
	if cfg.Email != "" {
		clientOpts = append(clientOpts, pubmed.WithEmail(cfg.Email))
	}

	var fetcher library.Fetcher = pubmed.NewClient(clientOpts...)
	if store, err := cache.Open(cache.DefaultPath(dir)); err == nil {
		defer store.Close()
		fetcher = cache.NewFetcher(store, fetcher)
	}

	mgr := library.NewManager(fetcher,
		library.WithDir(dir),
		library.WithFile(file),
		library.WithPrint(addPrint),
	)

	_, err = mgr.AddPMIDs(cmd.Context(), args)
	return err
}
