package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enricher",
		Short: "Book catalog enrichment tool backed by Google Books",
		Long: `Enricher fills the Notes column of a Zotero book-catalog CSV export with
descriptions fetched from the Google Books volumes API.

Search results are reconciled against each catalog entry by title and author
similarity. Confident matches are accepted automatically; inconclusive ones
are offered for interactive review. Progress is written back to the output
file after every row, so an interrupted run can be resumed by rerunning
against the output file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newEnrichCmd())
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newFixCmd())

	return cmd
}
