// Package table holds the uniform in-memory representation every file format
// loads into: ordered named columns of tagged scalar cells.
package table

import "fmt"

// Column is one named value sequence of a Table.
type Column struct {
	Name   string
	Values []Value
}

// Table is an ordered collection of equally long, uniquely named columns.
// Column order is the producing loader's insertion order and is preserved by
// every operation; row-narrowing operations build a fresh Table and never
// touch the source.
type Table struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a Table from columns, enforcing unique non-empty names and a
// uniform row count across all columns.
func New(cols ...Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for i, col := range cols {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, exists := t.index[col.Name]; exists {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if i > 0 && len(col.Values) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name, len(col.Values), t.rows)
		}
		t.rows = len(col.Values)
		t.index[col.Name] = i
		t.cols = append(t.cols, col)
	}
	return t, nil
}

func (t *Table) NumRows() int { return t.rows }
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column. The returned value slice is the table's
// own storage; callers must treat it as read-only.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// HasColumn reports whether the table carries a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Row assembles the cells of one row in column order.
func (t *Table) Row(i int) ([]Value, error) {
	if i < 0 || i >= t.rows {
		return nil, fmt.Errorf("row %d out of range (table has %d rows)", i, t.rows)
	}
	row := make([]Value, len(t.cols))
	for c, col := range t.cols {
		row[c] = col.Values[i]
	}
	return row, nil
}

// Select builds a new Table containing the given rows, in the given order,
// over the same column set. Cell storage is copied, not aliased.
func (t *Table) Select(rows []int) (*Table, error) {
	for _, r := range rows {
		if r < 0 || r >= t.rows {
			return nil, fmt.Errorf("row %d out of range (table has %d rows)", r, t.rows)
		}
	}
	cols := make([]Column, len(t.cols))
	for c, col := range t.cols {
		values := make([]Value, len(rows))
		for i, r := range rows {
			values[i] = col.Values[r]
		}
		cols[c] = Column{Name: col.Name, Values: values}
	}
	return New(cols...)
}

// Equal reports whether two tables agree on column names, column order and
// every cell.
func (t *Table) Equal(o *Table) bool {
	if t.rows != o.rows || len(t.cols) != len(o.cols) {
		return false
	}
	for c, col := range t.cols {
		other := o.cols[c]
		if col.Name != other.Name {
			return false
		}
		for i, v := range col.Values {
			if !v.Equal(other.Values[i]) {
				return false
			}
		}
	}
	return true
}
