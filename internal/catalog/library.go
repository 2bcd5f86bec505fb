package catalog

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column names recognized in a Zotero CSV export. Every other column is
// opaque and passed through untouched.
const (
	ColumnTitle  = "Title"
	ColumnAuthor = "Author"
	ColumnNotes  = "Notes"
)

// Library holds a catalog export in memory: the header row plus every
// record, in original column order. Only the Notes cell of a row is ever
// mutated; all other cells are preserved verbatim.
type Library struct {
	Header []string
	Rows   [][]string

	titleIdx  int
	authorIdx int
	notesIdx  int
}

// Load reads a catalog CSV from path. The header row is required and must
// contain a Title column. Author and Notes columns are recognized when
// present; their absence is not an error, the fields just read as empty.
func Load(path string) (*Library, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	// Zotero exports carry a UTF-8 BOM; it has to go before the CSV parser
	// sees it, or a quoted first field fails to parse.
	reader := csv.NewReader(transform.NewReader(file, unicode.UTF8BOM.NewDecoder()))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("catalog file is empty: %s", path)
	}

	header := records[0]

	lib := &Library{
		Header:    header,
		Rows:      records[1:],
		titleIdx:  indexOf(header, ColumnTitle),
		authorIdx: indexOf(header, ColumnAuthor),
		notesIdx:  indexOf(header, ColumnNotes),
	}

	if lib.titleIdx < 0 {
		return nil, fmt.Errorf("catalog file has no %q column: %s", ColumnTitle, path)
	}

	slog.Debug("Loaded catalog", "path", path, "rows", len(lib.Rows), "columns", len(header))

	return lib, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (l *Library) Len() int {
	return len(l.Rows)
}

// Title returns the trimmed title of row i.
func (l *Library) Title(i int) string {
	return l.cell(i, l.titleIdx)
}

// Author returns the trimmed author of row i, or "" if the export has no
// Author column.
func (l *Library) Author(i int) string {
	return l.cell(i, l.authorIdx)
}

// Notes returns the trimmed notes of row i, or "" if the export has no
// Notes column.
func (l *Library) Notes(i int) string {
	return l.cell(i, l.notesIdx)
}

func (l *Library) cell(i, col int) string {
	if col < 0 || col >= len(l.Rows[i]) {
		return ""
	}
	return strings.TrimSpace(l.Rows[i][col])
}

// HasNotesColumn reports whether the export carries a Notes column, the
// destination for enrichment.
func (l *Library) HasNotesColumn() bool {
	return l.notesIdx >= 0
}

// SetNotes replaces the Notes cell of row i. It is a no-op when the export
// has no Notes column.
func (l *Library) SetNotes(i int, note string) {
	if l.notesIdx < 0 || l.notesIdx >= len(l.Rows[i]) {
		return
	}
	l.Rows[i][l.notesIdx] = note
}

// Save rewrites the full catalog (header plus every row) to path as UTF-8
// CSV with \n line endings. Called after every row decision so a crash
// mid-run leaves a complete, valid, partially-filled file behind.
func (l *Library) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(l.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(l.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

// SaveZotero rewrites the full catalog to path in Zotero interchange form:
// UTF-8 with a leading BOM, every field quoted, \n line endings.
func (l *Library) SaveZotero(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString("\uFEFF"); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	if err := writeQuoted(file, l.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range l.Rows {
		if err := writeQuoted(file, row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

// writeQuoted emits one CSV record with every field quoted, the format
// Zotero's importer expects. encoding/csv only quotes when it has to, so
// the quoting is done by hand here.
func writeQuoted(file *os.File, record []string) error {
	var b strings.Builder
	for i, field := range record {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	_, err := file.WriteString(b.String())
	return err
}
