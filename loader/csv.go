package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"chemtab/table"
)

// CSVLoader loads delimited text files.
//
// Options: "delimiter" (one-character string, default ","), "comment"
// (one-character string, default none), "header" (bool, default true; when
// false columns are named "0", "1", ...), "raw" (bool, default false; when
// true every cell stays a verbatim string instead of being promoted per
// column).
type CSVLoader struct{}

func (l *CSVLoader) Load(path string, opts Options) (*table.Table, error) {
	if err := opts.Allow("delimiter", "comment", "header", "raw"); err != nil {
		return nil, fmt.Errorf("load csv %s: %w", path, err)
	}
	delimiter, err := opts.Rune("delimiter", ',')
	if err != nil {
		return nil, fmt.Errorf("load csv %s: %w", path, err)
	}
	comment, err := opts.Rune("comment", 0)
	if err != nil {
		return nil, fmt.Errorf("load csv %s: %w", path, err)
	}
	header, err := opts.Bool("header", true)
	if err != nil {
		return nil, fmt.Errorf("load csv %s: %w", path, err)
	}
	raw, err := opts.Bool("raw", false)
	if err != nil {
		return nil, fmt.Errorf("load csv %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	// Decode a possible BOM (UTF-8 or UTF-16) into plain UTF-8.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	csvReader := csv.NewReader(transform.NewReader(file, decoder))
	csvReader.Comma = delimiter
	if comment != 0 {
		csvReader.Comment = comment
	}

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv %s: file has no rows", path)
	}

	var headerRow []string
	var dataRows [][]string
	if header {
		headerRow = rows[0]
		dataRows = rows[1:]
	} else {
		headerRow = make([]string, len(rows[0]))
		for i := range headerRow {
			headerRow[i] = strconv.Itoa(i)
		}
		dataRows = rows
	}

	tbl, err := table.FromRecords(headerRow, dataRows, raw)
	if err != nil {
		return nil, fmt.Errorf("load csv %s: %w", path, err)
	}
	return tbl, nil
}
