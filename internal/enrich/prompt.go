package enrich

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/open-shelves/enricher/internal/catalog"
)

// previewLength is how much of a candidate description review shows.
const previewLength = 200

// Original is the catalog side of a review prompt.
type Original struct {
	Title  string
	Author string
}

// Prompter asks the operator to judge one candidate. Implementations block
// until a valid answer is given.
type Prompter interface {
	Review(orig Original, cand catalog.Candidate, index, total int) Choice
}

// TerminalPrompter reads review decisions from a console.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// NewTerminalPrompter returns a prompter reading from in and writing to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{In: in, Out: out}
}

// scan reads one line of operator input, initializing the scanner on first
// use so a TerminalPrompter built as a struct literal works too.
func (p *TerminalPrompter) scan() (string, bool) {
	if p.scanner == nil {
		p.scanner = bufio.NewScanner(p.In)
	}
	if !p.scanner.Scan() {
		return "", false
	}
	return p.scanner.Text(), true
}

// Review prints the candidate next to the original entry and loops until
// the operator answers accept, next, or skip.
func (p *TerminalPrompter) Review(orig Original, cand catalog.Candidate, index, total int) Choice {
	fmt.Fprintf(p.Out, "\n  Candidate %d/%d\n", index, total)
	fmt.Fprintf(p.Out, "  Original title: %s\n", orig.Title)
	if orig.Author != "" {
		fmt.Fprintf(p.Out, "  Original author: %s\n", orig.Author)
	}
	fmt.Fprintf(p.Out, "  Google Books title: %s\n", cand.Title)
	if len(cand.Authors) > 0 {
		fmt.Fprintf(p.Out, "  Google Books authors: %s\n", strings.Join(cand.Authors, ", "))
	}
	if cand.Year != "" {
		fmt.Fprintf(p.Out, "  Year: %s\n", cand.Year)
	}
	if cand.Publisher != "" {
		fmt.Fprintf(p.Out, "  Publisher: %s\n", cand.Publisher)
	}
	if cand.PageCount > 0 {
		fmt.Fprintf(p.Out, "  Pages: %d\n", cand.PageCount)
	}
	if cand.Description != "" {
		fmt.Fprintf(p.Out, "  Description: %s\n", Preview(cand.Description))
	}

	for {
		fmt.Fprintf(p.Out, "  Use this description? [y]es / [n]ext / [s]kip: ")
		line, ok := p.scan()
		if !ok {
			// Input closed: treat as abandoning the row.
			return ChoiceSkip
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return ChoiceAccept
		case "n", "next":
			return ChoiceNext
		case "s", "skip":
			return ChoiceSkip
		}
	}
}

// Preview truncates a description to its first 200 characters, appending an
// ellipsis when it was longer.
func Preview(description string) string {
	runes := []rune(description)
	if len(runes) <= previewLength {
		return description
	}
	return string(runes[:previewLength]) + "..."
}
