package enrich

import "github.com/open-shelves/enricher/internal/catalog"

// Outcome is the terminal state of one row's reconciliation.
type Outcome int

const (
	// AutoAccepted: the scorer took the top-ranked candidate unprompted.
	AutoAccepted Outcome = iota
	// UserAccepted: the operator picked a candidate during review.
	UserAccepted
	// Skipped: the operator abandoned the row, or review ran out of
	// candidates.
	Skipped
	// NoResults: the search returned nothing usable.
	NoResults
)

// Decision pairs an outcome with the accepted candidate, if any.
type Decision struct {
	Outcome   Outcome
	Candidate *catalog.Candidate
}

// Choice is the operator's answer during interactive review.
type Choice int

const (
	// ChoiceAccept takes the candidate on display.
	ChoiceAccept Choice = iota
	// ChoiceNext advances to the next ranked candidate.
	ChoiceNext
	// ChoiceSkip abandons the row entirely.
	ChoiceSkip
)
