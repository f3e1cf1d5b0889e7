package loader

import (
	"path/filepath"

	"chemtab/table"
)

// Manager is the façade over the core: resolve the path extension against
// the registry, load the file with a fresh loader, then run the filter
// pipeline over the result.
//
// The registry is read-only after construction and every call works on its
// own loader instance and table, so concurrent Load calls on one Manager are
// safe without locking.
type Manager struct {
	registry *Registry
}

// NewManager builds a manager over the fixed default registry.
func NewManager() *Manager {
	return &Manager{registry: DefaultRegistry()}
}

// Registry exposes the manager's extension table for listing.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Load loads the file at path and applies filters. The extension decides the
// loader (exact match, UnsupportedFormatError otherwise); opts go to the
// loader verbatim; loader errors come back unchanged. The returned table
// carries exactly the columns the loader produced, with surviving rows in
// the loader's order. A nil filter spec means no filtering.
func (m *Manager) Load(path string, filters *FilterSpec, opts Options) (*table.Table, error) {
	format, err := m.registry.Resolve(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	ldr, err := format.NewLoader()
	if err != nil {
		return nil, err
	}
	tbl, err := ldr.Load(path, opts)
	if err != nil {
		return nil, err
	}
	return filters.Apply(tbl)
}
