package catalog

// Candidate is one search result from the book-metadata service, produced
// fresh per search call. Authors is ordered, first entry is the primary
// author. Year is a 4-digit string or empty.
type Candidate struct {
	Title       string
	Description string
	Authors     []string
	Year        string
	Publisher   string
	PageCount   int64
}

// PrimaryAuthor returns the first author, or "" when none were reported.
func (c Candidate) PrimaryAuthor() string {
	if len(c.Authors) == 0 {
		return ""
	}
	return c.Authors[0]
}
