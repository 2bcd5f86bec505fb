package enrich

import "fmt"

// The two note bodies rendered into the catalog. Downstream note rendering
// depends on this exact markup, so the literals are reproduced byte for
// byte; only the link parameters are substituted.
const (
	placeholderTemplate = "<div class=\"comment\">\n<p>This book needs an abstract or excerpt, and it doesn't have a Google Books description available to use. For a customized abstract or excerpt, add a note to the item in the \n<a href=\"github.com/%s/%s\">Zotero library</a></p>\n</div>"

	attributionTemplate = "\n\n<div class=\"comment\">\n<p>This description was automatically added from \n<a href=\"https://books.google.com/books?id=%s\">Google Books</a>. \nFor a customized abstract or excerpt, add a note to the item in the \n<a href=\"github.com/%s/%s\">Zotero library</a></p>\n</div>"
)

// Templates renders the provenance notes written into the catalog.
type Templates struct {
	// Github and BaseURL form the "github.com/<Github>/<BaseURL>" library
	// link inside both notes.
	Github  string
	BaseURL string
	// VolumeID is the Google Books volume id in the attribution link.
	VolumeID string
}

// DefaultTemplates renders the historical note text unchanged: the library
// link keeps its literal template tokens.
func DefaultTemplates() Templates {
	return Templates{
		Github:   "{{github}}",
		BaseURL:  "{{BASE_URL}}",
		VolumeID: "JK8VXK7QMNAC",
	}
}

// Placeholder is the note written when no usable description was found.
func (t Templates) Placeholder() string {
	return fmt.Sprintf(placeholderTemplate, t.Github, t.BaseURL)
}

// Attribution is the footer appended to an accepted description. The
// leading blank line is part of the footer.
func (t Templates) Attribution() string {
	return fmt.Sprintf(attributionTemplate, t.VolumeID, t.Github, t.BaseURL)
}
