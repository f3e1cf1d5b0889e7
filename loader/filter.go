package loader

import (
	"fmt"

	"chemtab/table"
)

// FilterSpec is an ordered sequence of column membership constraints. Each
// constraint keeps the rows whose cell in the named column is a member of an
// accepted-value set; constraints apply one after another in insertion order,
// so the whole spec is a cumulative AND. Order changes intermediate tables
// only, never the final row set.
type FilterSpec struct {
	entries []filterEntry
	err     error
}

type filterEntry struct {
	column   string
	accepted []table.Value
}

func NewFilterSpec() *FilterSpec {
	return &FilterSpec{}
}

// Where appends one constraint. Values are normalized into table scalars
// right here, at the boundary: a bare scalar is a one-element set, nil is the
// explicit null marker, and an empty accepted set matches no row at all. A
// value that cannot become a table scalar invalidates the whole spec; the
// error surfaces when the spec is applied.
func (f *FilterSpec) Where(column string, accepted ...any) *FilterSpec {
	if f.err != nil {
		return f
	}
	entry := filterEntry{column: column, accepted: make([]table.Value, 0, len(accepted))}
	for _, raw := range accepted {
		v, err := table.ValueOf(raw)
		if err != nil {
			f.err = fmt.Errorf("filter %q: %w", column, err)
			return f
		}
		entry.accepted = append(entry.accepted, v)
	}
	f.entries = append(f.entries, entry)
	return f
}

// Len reports the number of constraints.
func (f *FilterSpec) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}

// Err reports a normalization failure recorded by Where.
func (f *FilterSpec) Err() error {
	if f == nil {
		return nil
	}
	return f.err
}

// Columns lists the constrained column names in application order.
func (f *FilterSpec) Columns() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.entries))
	for i, entry := range f.entries {
		names[i] = entry.column
	}
	return names
}

// Apply narrows the table constraint by constraint. A nil or empty spec is
// the identity and returns the table unchanged, without copying. Every
// constrained column must exist in the table: the first miss fails the whole
// call with MissingColumnError before any narrowing happens. Surviving rows
// keep their original relative order, and cells match by native scalar
// equality only (no coercion; null cells match only an explicit null marker
// in the accepted set).
func (f *FilterSpec) Apply(t *table.Table) (*table.Table, error) {
	if f == nil {
		return t, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(f.entries) == 0 {
		return t, nil
	}
	for _, entry := range f.entries {
		if !t.HasColumn(entry.column) {
			return nil, &MissingColumnError{Column: entry.column}
		}
	}

	result := t
	for _, entry := range f.entries {
		col, ok := result.Column(entry.column)
		if !ok {
			return nil, &MissingColumnError{Column: entry.column}
		}
		rows := make([]int, 0, len(col.Values))
		for i, cell := range col.Values {
			if valueIn(cell, entry.accepted) {
				rows = append(rows, i)
			}
		}
		narrowed, err := result.Select(rows)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", entry.column, err)
		}
		result = narrowed
	}
	return result, nil
}

func valueIn(v table.Value, set []table.Value) bool {
	for _, member := range set {
		if v.Equal(member) {
			return true
		}
	}
	return false
}
