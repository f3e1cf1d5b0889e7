package table

import (
	"fmt"
	"strconv"
)

// FromRecords builds a Table from raw string cells, one slice per row, in
// header order. Every row must have exactly one cell per header entry.
//
// With raw set, cells become verbatim string values. Otherwise each column is
// promoted independently, the way spreadsheet tooling reads untyped text: a
// column whose non-empty cells all parse as floats becomes a number column, a
// column of true/false literals becomes a bool column, anything else stays
// strings. Empty cells become null whenever promotion runs and the empty
// string in raw mode.
func FromRecords(header []string, rows [][]string, raw bool) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(header))
		}
	}
	cols := make([]Column, len(header))
	for c, name := range header {
		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = row[c]
		}
		if raw {
			cols[c] = rawColumn(name, cells)
		} else {
			cols[c] = inferColumn(name, cells)
		}
	}
	return New(cols...)
}

func rawColumn(name string, cells []string) Column {
	values := make([]Value, len(cells))
	for i, cell := range cells {
		values[i] = String(cell)
	}
	return Column{Name: name, Values: values}
}

func inferColumn(name string, cells []string) Column {
	allNumber := true
	allBool := true
	nonEmpty := 0
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		nonEmpty++
		if allNumber {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				allNumber = false
			}
		}
		if allBool && !isBoolLiteral(cell) {
			allBool = false
		}
		if !allNumber && !allBool {
			break
		}
	}

	values := make([]Value, len(cells))
	for i, cell := range cells {
		switch {
		case cell == "":
			values[i] = Null()
		case nonEmpty > 0 && allNumber:
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				values[i] = String(cell)
				continue
			}
			values[i] = Number(f)
		case nonEmpty > 0 && allBool:
			values[i] = Bool(cell == "true" || cell == "True" || cell == "TRUE")
		default:
			values[i] = String(cell)
		}
	}
	return Column{Name: name, Values: values}
}

func isBoolLiteral(cell string) bool {
	switch cell {
	case "true", "True", "TRUE", "false", "False", "FALSE":
		return true
	}
	return false
}
