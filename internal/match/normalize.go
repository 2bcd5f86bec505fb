// Package match implements the title/author reconciliation rules used to
// decide whether a metadata search result describes the same book as a
// catalog entry.
package match

import "strings"

// Normalize canonicalizes a title for comparison: the subtitle (everything
// from the first colon or semicolon on) is dropped, the remainder is
// lowercased, and runs of whitespace collapse to single spaces. Catalog
// entries and API results routinely disagree on subtitles, case, and
// spacing; they rarely disagree on the cleaned-up prefix.
func Normalize(title string) string {
	if title == "" {
		return ""
	}
	if i := strings.IndexAny(title, ":;"); i >= 0 {
		title = title[:i]
	}
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
