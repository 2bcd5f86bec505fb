// Package enrich drives the per-row reconciliation of a catalog export
// against book-metadata search results.
package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/open-shelves/enricher/internal/catalog"
	"github.com/open-shelves/enricher/internal/match"
)

// Searcher supplies ranked candidate matches for a catalog entry. The
// implementation owns rate limiting and request timeouts.
type Searcher interface {
	Search(ctx context.Context, title, author string) ([]catalog.Candidate, error)
}

// Stats are the running counters of an enrichment pass.
type Stats struct {
	Updated      int // rows that received a description
	AutoAccepted int // of Updated: accepted by the scorer
	UserAccepted int // of Updated: accepted during review
	NoMatch      int // rows with no result, or skipped in review
}

// Controller walks the catalog one row at a time: rows that already carry
// notes are left alone, everything else is searched, scored, reviewed if
// the score is inconclusive, and checkpointed to OutputPath after every
// decision. No failure along the way aborts the run.
type Controller struct {
	Library   *catalog.Library
	Searcher  Searcher
	Scorer    *match.Scorer
	Prompter  Prompter
	Templates Templates

	// OutputPath receives the full-catalog rewrite after every row.
	OutputPath string
	// Zotero selects the interchange checkpoint format (BOM, quote-all).
	Zotero bool

	Stats Stats
}

// Run processes every eligible row. Rows with non-empty notes or an empty
// title are passed over without counting.
func (c *Controller) Run(ctx context.Context) {
	total := c.Library.Len()
	slog.Info("Processing catalog", "rows", total)

	for i := 0; i < total; i++ {
		if c.Library.Notes(i) != "" {
			continue
		}
		title := c.Library.Title(i)
		if title == "" {
			continue
		}
		author := c.Library.Author(i)

		slog.Info("Processing row", "index", i+1, "total", total, "title", title)

		candidates, err := c.Searcher.Search(ctx, title, author)
		if err != nil {
			slog.Error("Search failed", "title", title, "err", err)
			candidates = nil
		}

		decision := c.decide(title, author, candidates)
		c.apply(i, decision)
		c.checkpoint()
	}
}

// decide runs one row through the state machine: empty results short-circuit
// to NoResults, the scorer judges the top-ranked candidate, and anything
// inconclusive goes to review, one candidate at a time in ranked order.
// Exhausting the list is the same as skipping.
func (c *Controller) decide(title, author string, candidates []catalog.Candidate) Decision {
	if len(candidates) == 0 {
		slog.Info("No results", "title", title)
		return Decision{Outcome: NoResults}
	}

	first := candidates[0]
	if c.Scorer.ShouldAutoAccept(title, author, first.Title, first.Authors) {
		slog.Info("Auto-accepted description", "original", title, "matched", first.Title)
		return Decision{Outcome: AutoAccepted, Candidate: &first}
	}

	orig := Original{Title: title, Author: author}
	for i := range candidates {
		cand := candidates[i]
		switch c.Prompter.Review(orig, cand, i+1, len(candidates)) {
		case ChoiceAccept:
			slog.Info("Accepted description", "original", title, "matched", cand.Title)
			return Decision{Outcome: UserAccepted, Candidate: &cand}
		case ChoiceSkip:
			slog.Info("Skipped row", "title", title)
			return Decision{Outcome: Skipped}
		}
	}

	slog.Info("Skipped row, candidates exhausted", "title", title)
	return Decision{Outcome: Skipped}
}

// apply writes the decision's note into the row and bumps the counters.
// Accepted rows get the description plus the attribution footer; everything
// else gets the placeholder, which also marks the row done for reruns.
func (c *Controller) apply(i int, d Decision) {
	switch d.Outcome {
	case AutoAccepted:
		c.Library.SetNotes(i, d.Candidate.Description+c.Templates.Attribution())
		c.Stats.Updated++
		c.Stats.AutoAccepted++
	case UserAccepted:
		c.Library.SetNotes(i, d.Candidate.Description+c.Templates.Attribution())
		c.Stats.Updated++
		c.Stats.UserAccepted++
	case Skipped, NoResults:
		c.Library.SetNotes(i, c.Templates.Placeholder())
		c.Stats.NoMatch++
	}
}

// checkpoint rewrites the whole catalog after a row decision. A write
// failure is logged and swallowed; the next row's checkpoint retries.
func (c *Controller) checkpoint() {
	var err error
	if c.Zotero {
		err = c.Library.SaveZotero(c.OutputPath)
	} else {
		err = c.Library.Save(c.OutputPath)
	}
	if err != nil {
		slog.Error("Failed to save progress", "path", c.OutputPath, "err", err)
	}
}

// PrintSummary writes the end-of-run totals.
func (c *Controller) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(w, "PROCESSING COMPLETE\n")
	fmt.Fprintf(w, "Books updated: %d\n", c.Stats.Updated)
	fmt.Fprintf(w, "  - Auto-accepted: %d\n", c.Stats.AutoAccepted)
	fmt.Fprintf(w, "  - Manual accept: %d\n", c.Stats.UserAccepted)
	fmt.Fprintf(w, "No match/skipped: %d\n", c.Stats.NoMatch)
	fmt.Fprintf(w, "Output file: %s\n", c.OutputPath)
}
