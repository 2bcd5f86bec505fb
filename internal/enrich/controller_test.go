package enrich

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-shelves/enricher/internal/catalog"
	"github.com/open-shelves/enricher/internal/match"
)

type fakeSearcher struct {
	results map[string][]catalog.Candidate
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, title, author string) ([]catalog.Candidate, error) {
	f.queries = append(f.queries, title)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[title], nil
}

type scriptedPrompter struct {
	choices []Choice
	calls   int
}

func (p *scriptedPrompter) Review(_ Original, _ catalog.Candidate, _, _ int) Choice {
	if p.calls >= len(p.choices) {
		return ChoiceSkip
	}
	choice := p.choices[p.calls]
	p.calls++
	return choice
}

func loadLibrary(t *testing.T, csvContent string) *catalog.Library {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.csv")
	if err := os.WriteFile(path, []byte(csvContent), 0644); err != nil {
		t.Fatal(err)
	}
	lib, err := catalog.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

func newController(t *testing.T, lib *catalog.Library, searcher Searcher, prompter Prompter) *Controller {
	t.Helper()
	return &Controller{
		Library:    lib,
		Searcher:   searcher,
		Scorer:     match.NewScorer(0),
		Prompter:   prompter,
		Templates:  DefaultTemplates(),
		OutputPath: filepath.Join(t.TempDir(), "out.csv"),
	}
}

func TestRunAutoAccept(t *testing.T) {
	lib := loadLibrary(t, "Title,Author,Notes\nDune,Frank Herbert,\n")
	searcher := &fakeSearcher{results: map[string][]catalog.Candidate{
		"Dune": {{Title: "Dune", Authors: []string{"Frank Herbert"}, Description: "D"}},
	}}
	c := newController(t, lib, searcher, &scriptedPrompter{})

	c.Run(context.Background())

	expected := "D" + DefaultTemplates().Attribution()
	if got := lib.Rows[0][2]; got != expected {
		t.Errorf("Notes mismatch:\ngot  %q\nwant %q", got, expected)
	}
	if c.Stats.Updated != 1 || c.Stats.AutoAccepted != 1 || c.Stats.UserAccepted != 0 || c.Stats.NoMatch != 0 {
		t.Errorf("Unexpected stats: %+v", c.Stats)
	}
}

func TestRunNoResults(t *testing.T) {
	lib := loadLibrary(t, "Title,Author,Notes\nDune,Frank Herbert,\n")
	c := newController(t, lib, &fakeSearcher{}, &scriptedPrompter{})

	c.Run(context.Background())

	if got := lib.Rows[0][2]; got != DefaultTemplates().Placeholder() {
		t.Errorf("Expected placeholder note, got %q", got)
	}
	if c.Stats.Updated != 0 || c.Stats.NoMatch != 1 {
		t.Errorf("Unexpected stats: %+v", c.Stats)
	}
}

func TestRunSearchErrorTreatedAsNoResults(t *testing.T) {
	lib := loadLibrary(t, "Title,Author,Notes\nDune,Frank Herbert,\n")
	c := newController(t, lib, &fakeSearcher{err: os.ErrDeadlineExceeded}, &scriptedPrompter{})

	c.Run(context.Background())

	if got := lib.Rows[0][2]; got != DefaultTemplates().Placeholder() {
		t.Errorf("Expected placeholder note after search failure, got %q", got)
	}
	if c.Stats.NoMatch != 1 {
		t.Errorf("Unexpected stats: %+v", c.Stats)
	}
}

func TestRunOperatorSkips(t *testing.T) {
	lib := loadLibrary(t, "Title,Author,Notes\nDune,Frank Herbert,\n")
	searcher := &fakeSearcher{results: map[string][]catalog.Candidate{
		"Dune": {{Title: "Completely Different", Authors: []string{"Someone Else"}, Description: "wrong book"}},
	}}
	prompter := &scriptedPrompter{choices: []Choice{ChoiceSkip}}
	c := newController(t, lib, searcher, prompter)

	c.Run(context.Background())

	if got := lib.Rows[0][2]; got != DefaultTemplates().Placeholder() {
		t.Errorf("Expected placeholder note after skip, got %q", got)
	}
	if strings.Contains(lib.Rows[0][2], "wrong book") {
		t.Error("Skipped candidate's description leaked into notes")
	}
	if c.Stats.Updated != 0 || c.Stats.NoMatch != 1 {
		t.Errorf("Unexpected stats: %+v", c.Stats)
	}
	if prompter.calls != 1 {
		t.Errorf("Expected 1 review, got %d", prompter.calls)
	}
}

func TestRunOperatorAcceptsSecondCandidate(t *testing.T) {
	lib := loadLibrary(t, "Title,Author,Notes\nDune,Frank Herbert,\n")
	searcher := &fakeSearcher{results: map[string][]catalog.Candidate{
		"Dune": {
			{Title: "Dune Messiah", Authors: []string{"Frank Herbert"}, Description: "sequel"},
			{Title: "Dune (40th Anniversary Edition)", Authors: []string{"Frank Herbert"}, Description: "the one"},
		},
	}}
	prompter := &scriptedPrompter{choices: []Choice{ChoiceNext, ChoiceAccept}}
	c := newController(t, lib, searcher, prompter)

	c.Run(context.Background())

	expected := "the one" + DefaultTemplates().Attribution()
	if got := lib.Rows[0][2]; got != expected {
		t.Errorf("Notes mismatch:\ngot  %q\nwant %q", got, expected)
	}
	if c.Stats.Updated != 1 || c.Stats.UserAccepted != 1 || c.Stats.AutoAccepted != 0 {
		t.Errorf("Unexpected stats: %+v", c.Stats)
	}
}

func TestRunCandidatesExhausted(t *testing.T) {
	lib := loadLibrary(t, "Title,Author,Notes\nDune,Frank Herbert,\n")
	searcher := &fakeSearcher{results: map[string][]catalog.Candidate{
		"Dune": {
			{Title: "Wrong One", Description: "a"},
			{Title: "Also Wrong", Description: "b"},
		},
	}}
	prompter := &scriptedPrompter{choices: []Choice{ChoiceNext, ChoiceNext}}
	c := newController(t, lib, searcher, prompter)

	c.Run(context.Background())

	if got := lib.Rows[0][2]; got != DefaultTemplates().Placeholder() {
		t.Errorf("Expected placeholder after exhausting candidates, got %q", got)
	}
	if c.Stats.NoMatch != 1 {
		t.Errorf("Unexpected stats: %+v", c.Stats)
	}
	if prompter.calls != 2 {
		t.Errorf("Expected both candidates reviewed, got %d", prompter.calls)
	}
}

func TestRunSkipsRowsWithNotesOrWithoutTitle(t *testing.T) {
	lib := loadLibrary(t, "Title,Author,Notes\nSolaris,Stanislaw Lem,existing note\n,No Title,\nDune,Frank Herbert,\n")
	searcher := &fakeSearcher{results: map[string][]catalog.Candidate{
		"Dune": {{Title: "Dune", Description: "D"}},
	}}
	c := newController(t, lib, searcher, &scriptedPrompter{})

	c.Run(context.Background())

	if got := lib.Rows[0][2]; got != "existing note" {
		t.Errorf("Pre-existing note was modified: %q", got)
	}
	if got := lib.Rows[1][2]; got != "" {
		t.Errorf("Title-less row was modified: %q", got)
	}
	if len(searcher.queries) != 1 || searcher.queries[0] != "Dune" {
		t.Errorf("Expected a single search for Dune, got %v", searcher.queries)
	}
	if c.Stats.Updated != 1 || c.Stats.AutoAccepted != 1 || c.Stats.NoMatch != 0 {
		t.Errorf("Unexpected stats: %+v", c.Stats)
	}
}

func TestRunCheckpointsEveryRow(t *testing.T) {
	lib := loadLibrary(t, "Key,Title,Author,Notes\nA1,Dune,Frank Herbert,\nA2,Unknown Book,,\n")
	searcher := &fakeSearcher{results: map[string][]catalog.Candidate{
		"Dune": {{Title: "Dune", Description: "D"}},
	}}
	c := newController(t, lib, searcher, &scriptedPrompter{})

	c.Run(context.Background())

	saved, err := catalog.Load(c.OutputPath)
	if err != nil {
		t.Fatal(err)
	}

	if saved.Len() != lib.Len() {
		t.Fatalf("Output row count %d != input %d", saved.Len(), lib.Len())
	}
	if len(saved.Header) != len(lib.Header) {
		t.Fatalf("Output column count %d != input %d", len(saved.Header), len(lib.Header))
	}
	if saved.Rows[0][0] != "A1" || saved.Rows[1][0] != "A2" {
		t.Error("Opaque key column not preserved in checkpoint")
	}
	if !strings.HasPrefix(saved.Rows[0][3], "D") {
		t.Errorf("Checkpoint missing accepted description: %q", saved.Rows[0][3])
	}
	if saved.Rows[1][3] != DefaultTemplates().Placeholder() {
		t.Errorf("Checkpoint missing placeholder: %q", saved.Rows[1][3])
	}
}

func TestRunZoteroCheckpoint(t *testing.T) {
	lib := loadLibrary(t, "Title,Notes\nDune,\n")
	searcher := &fakeSearcher{results: map[string][]catalog.Candidate{
		"Dune": {{Title: "Dune", Description: "D"}},
	}}
	c := newController(t, lib, searcher, &scriptedPrompter{})
	c.Zotero = true

	c.Run(context.Background())

	data, err := os.ReadFile(c.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\uFEFF\"Title\",\"Notes\"\n") {
		t.Errorf("Expected BOM and quoted header, got %q", string(data)[:40])
	}
}

func TestRunSaveFailureDoesNotAbort(t *testing.T) {
	lib := loadLibrary(t, "Title,Notes\nDune,\nSolaris,\n")
	searcher := &fakeSearcher{results: map[string][]catalog.Candidate{
		"Dune":    {{Title: "Dune", Description: "D"}},
		"Solaris": {{Title: "Solaris", Description: "S"}},
	}}
	c := newController(t, lib, searcher, &scriptedPrompter{})
	c.OutputPath = filepath.Join(t.TempDir(), "missing", "out.csv") // unwritable

	c.Run(context.Background())

	if c.Stats.Updated != 2 {
		t.Errorf("Run aborted on save failure: %+v", c.Stats)
	}
}

func TestPrintSummary(t *testing.T) {
	c := &Controller{OutputPath: "out.csv"}
	c.Stats = Stats{Updated: 3, AutoAccepted: 2, UserAccepted: 1, NoMatch: 4}

	var out strings.Builder
	c.PrintSummary(&out)

	summary := out.String()
	for _, want := range []string{
		"PROCESSING COMPLETE",
		"Books updated: 3",
		"Auto-accepted: 2",
		"Manual accept: 1",
		"No match/skipped: 4",
		"Output file: out.csv",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary missing %q:\n%s", want, summary)
		}
	}
}
