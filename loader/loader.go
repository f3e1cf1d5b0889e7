// Package loader is the format-dispatch core: it resolves a file extension to
// a loader, loads the file into a table and narrows the result through an
// ordered column/value filter pipeline.
package loader

import (
	"fmt"
	"strings"

	"chemtab/table"
)

// Loader is the single capability every format implements: parse the file at
// path into a table, honoring format-specific options. Implementations are
// constructed fresh for every load and hold no state across calls.
type Loader interface {
	Load(path string, opts Options) (*table.Table, error)
}

// Format enumerates the supported file formats.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatExcel
	FormatSMILES
	FormatSDF
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatExcel:
		return "excel"
	case FormatSMILES:
		return "smiles"
	case FormatSDF:
		return "sdf"
	default:
		return "unknown"
	}
}

// ParseFormat reads a format token, case-insensitively.
func ParseFormat(token string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "csv":
		return FormatCSV, nil
	case "excel":
		return FormatExcel, nil
	case "smiles":
		return FormatSMILES, nil
	case "sdf":
		return FormatSDF, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported format %q (supported: csv, excel, smiles, sdf)", token)
	}
}

// formatFactories is the static format-tag to constructor mapping. New
// formats are added here and in a registry entry, never by branching on
// extension strings elsewhere.
var formatFactories = map[Format]func() Loader{
	FormatCSV:    func() Loader { return &CSVLoader{} },
	FormatExcel:  func() Loader { return &ExcelLoader{} },
	FormatSMILES: func() Loader { return &SMILESLoader{} },
	FormatSDF:    func() Loader { return &SDFLoader{} },
}

// NewLoader constructs a fresh loader for the format.
func (f Format) NewLoader() (Loader, error) {
	construct, ok := formatFactories[f]
	if !ok {
		return nil, fmt.Errorf("no loader for format %q", f.String())
	}
	return construct(), nil
}

// UnsupportedFormatError reports a path extension with no registry entry.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "unsupported format: path has no extension"
	}
	return fmt.Sprintf("unsupported format %q", e.Ext)
}

// MissingColumnError reports a filter key that names no column of the loaded
// table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("filter column %q is not a column of the table", e.Column)
}
