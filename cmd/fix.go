package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/open-shelves/enricher/internal/catalog"
)

func newFixCmd() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Repair a Latin-1 catalog export",
		Long: `Fix re-encodes a Latin-1 catalog CSV as UTF-8 and strips the trailing
".0" that spreadsheet round trips leave on integer columns (years, page
counts).`,
		Example: `  enricher fix --input merged_books.csv --output books.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := catalog.FixEncoding(input, output)
			if err != nil {
				return err
			}

			slog.Info("Fixed catalog", "input", input, "output", output, "rows", rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to the Latin-1 catalog CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path to write the repaired UTF-8 CSV")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
