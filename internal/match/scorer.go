package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold is the similarity ratio a fuzzy title match must exceed
// before author evidence can auto-accept it.
const DefaultThreshold = 0.9

// Scorer decides whether a search result is a confident enough match to
// accept without asking the operator.
type Scorer struct {
	// Threshold for the fuzzy tier. Titles scoring at or below it are
	// never auto-accepted, no matter the author evidence.
	Threshold float64
}

// NewScorer returns a Scorer with the given threshold, or the default when
// threshold is not positive.
func NewScorer(threshold float64) *Scorer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Scorer{Threshold: threshold}
}

// Similarity returns the longest-matching-blocks sequence similarity of two
// strings in [0, 1], 1.0 for identical input. Symmetric.
func (s *Scorer) Similarity(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// ShouldAutoAccept applies the two-tier acceptance rule:
//
//  1. Titles equal after Normalize → accept. Handles subtitle, case, and
//     spacing differences exactly.
//  2. Otherwise, with an original author and at least one candidate author
//     on record: normalized-title similarity above the threshold AND a
//     primary-author match → accept. Similar-but-different titles (sequels,
//     editions) need the corroborating author evidence.
//
// Anything else falls through to interactive review.
func (s *Scorer) ShouldAutoAccept(origTitle, origAuthor, candTitle string, candAuthors []string) bool {
	normOrig := Normalize(origTitle)
	normCand := Normalize(candTitle)

	if normOrig == normCand {
		return true
	}

	if origAuthor != "" && len(candAuthors) > 0 {
		if s.Similarity(normOrig, normCand) > s.Threshold && AuthorsMatch(origAuthor, candAuthors[0]) {
			return true
		}
	}

	return false
}
