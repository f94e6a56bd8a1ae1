// Package main provides the refs CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refs",
	Short: "Personal BibTeX reference manager",
	Long: `refs maintains a BibTeX bibliography from PubMed IDs.

Records are fetched from the NCBI E-utilities API, assigned deterministic
citation keys (year-month-firstauthor-lastauthor), and merged into a .bib
file sorted by key. Existing entries always win on key collision, so manual
edits to the library survive refetching.

Defaults can be set in ~/.config/refs/config.yml (bib_dir, bib_file,
ncbi_api_key, email). An NCBI_API_KEY environment variable, including one
from a local .env file, raises the API rate limit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for NCBI_API_KEY)
	_ = godotenv.Load()

	rootCmd.Version = Version
}
