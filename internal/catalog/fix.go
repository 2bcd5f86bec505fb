package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// trailingZero matches integer cells that picked up a ".0" suffix from a
// spreadsheet round trip ("1987.0", "432.0").
var trailingZero = regexp.MustCompile(`^(\d+)\.0$`)

// FixEncoding reads a Latin-1 catalog CSV, strips spreadsheet float damage
// from integer-valued cells, and writes the result as UTF-8. Returns the
// number of data rows written.
func FixEncoding(inputPath, outputPath string) (int, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(transform.NewReader(file, charmap.ISO8859_1.NewDecoder()))
	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse catalog CSV: %w", err)
	}

	for _, record := range records {
		for i, cell := range record {
			record[i] = trailingZero.ReplaceAllString(cell, "$1")
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.WriteAll(records); err != nil {
		return 0, fmt.Errorf("failed to write rows: %w", err)
	}

	rows := len(records)
	if rows > 0 {
		rows-- // header
	}
	return rows, nil
}
