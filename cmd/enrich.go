package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-shelves/enricher/internal/catalog"
	"github.com/open-shelves/enricher/internal/config"
	"github.com/open-shelves/enricher/internal/enrich"
	"github.com/open-shelves/enricher/internal/googlebooks"
	"github.com/open-shelves/enricher/internal/match"
)

func newEnrichCmd() *cobra.Command {
	var input string
	var output string
	var configPath string
	var candidates int
	var threshold float64
	var language string
	var zotero bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fill empty Notes with Google Books descriptions",
		Long: `Enrich walks every row of the catalog that has a Title but no Notes,
searches Google Books for it, and reconciles the results against the entry.

A result whose title matches exactly after cleanup, or nearly matches with
corroborating author evidence, is accepted automatically. Anything less
certain is shown for review, one candidate at a time, ranked best first.
Rows with no usable result receive a placeholder note, which also marks
them as done for later runs.

The whole catalog is rewritten to the output file after every row, so the
run can be interrupted and resumed at any point.`,
		Example: `  # Enrich a Zotero export, writing books_enriched.csv
  enricher enrich --input books.csv

  # Single-candidate flow with Zotero interchange output
  enricher enrich --input books.csv --candidates 1 --zotero

  # Custom settings from a config file
  enricher enrich --input books.csv --config enrich.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			// Flags set explicitly win over the config file.
			if cmd.Flags().Changed("candidates") {
				cfg.Candidates = candidates
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = threshold
			}
			if cmd.Flags().Changed("lang") {
				cfg.Language = language
			}
			if cmd.Flags().Changed("zotero") {
				cfg.Zotero = zotero
			}

			if output == "" {
				output = defaultOutputPath(input)
			}

			return executeEnrich(cmd, input, output, cfg)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to the catalog CSV export")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path to write enriched CSV (default <input>_enriched.csv)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	cmd.Flags().IntVar(&candidates, "candidates", config.Default().Candidates, "Number of ranked search results to consider (1 = first result only)")
	cmd.Flags().Float64Var(&threshold, "threshold", config.Default().Threshold, "Similarity ratio a fuzzy title match must exceed")
	cmd.Flags().StringVar(&language, "lang", config.Default().Language, "Language restriction for search results")
	cmd.Flags().BoolVar(&zotero, "zotero", false, "Write output in Zotero interchange form (BOM, all fields quoted)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func executeEnrich(cmd *cobra.Command, input, output string, cfg config.Config) error {
	slog.Info("Starting enrichment", "input", input, "output", output, "candidates", cfg.Candidates)

	library, err := catalog.Load(input)
	if err != nil {
		return err
	}
	if !library.HasNotesColumn() {
		return fmt.Errorf("catalog file has no %q column to write descriptions into: %s", catalog.ColumnNotes, input)
	}

	client, err := googlebooks.NewClient(cmd.Context(), googlebooks.Config{
		APIKey:     os.Getenv("GOOGLE_BOOKS_API_KEY"),
		MaxResults: int64(cfg.Candidates),
		Language:   cfg.Language,
		Delay:      cfg.RequestDelay(),
		Timeout:    cfg.Timeout(),
	})
	if err != nil {
		return err
	}

	controller := &enrich.Controller{
		Library:  library,
		Searcher: client,
		Scorer:   match.NewScorer(cfg.Threshold),
		Prompter: enrich.NewTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		Templates: enrich.Templates{
			Github:   cfg.Github,
			BaseURL:  cfg.BaseURL,
			VolumeID: cfg.VolumeID,
		},
		OutputPath: output,
		Zotero:     cfg.Zotero,
	}

	controller.Run(cmd.Context())
	controller.PrintSummary(cmd.OutOrStdout())

	return nil
}

// defaultOutputPath mirrors the historical convention: books.csv enriches
// into books_enriched.csv.
func defaultOutputPath(input string) string {
	if strings.HasSuffix(input, ".csv") {
		return strings.TrimSuffix(input, ".csv") + "_enriched.csv"
	}
	return input + "_enriched.csv"
}
