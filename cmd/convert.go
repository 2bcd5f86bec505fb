package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/open-shelves/enricher/internal/catalog"
)

func newConvertCmd() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Re-emit a catalog CSV in Zotero interchange form",
		Long: `Convert rewrites a catalog CSV for bit-exact import into Zotero: UTF-8
with a leading byte-order marker, every field quoted, and LF line endings.`,
		Example: `  enricher convert --input books.csv --output books_zotero.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			library, err := catalog.Load(input)
			if err != nil {
				return err
			}

			if err := library.SaveZotero(output); err != nil {
				return err
			}

			slog.Info("Converted catalog", "input", input, "output", output, "rows", library.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to the catalog CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path to write the Zotero-format CSV")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
