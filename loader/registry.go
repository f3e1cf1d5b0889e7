package loader

import "sort"

// Registry maps extension tokens (with the leading dot, stored lower-case) to
// format tags. Lookup is an exact, case-sensitive match: ".CSV" does not
// resolve, and no content sniffing ever happens. The default registry is
// fixed; it is built once per manager and read-only afterwards.
type Registry struct {
	formats map[string]Format
}

// DefaultRegistry returns the fixed extension table.
func DefaultRegistry() *Registry {
	return &Registry{formats: map[string]Format{
		".csv":  FormatCSV,
		".xls":  FormatExcel,
		".xlsx": FormatExcel,
		".smi":  FormatSMILES,
		".sdf":  FormatSDF,
	}}
}

// Resolve returns the format registered for the extension token, or
// UnsupportedFormatError when there is none.
func (r *Registry) Resolve(ext string) (Format, error) {
	format, ok := r.formats[ext]
	if !ok {
		return FormatUnknown, &UnsupportedFormatError{Ext: ext}
	}
	return format, nil
}

// RegistryEntry is one extension binding, for listing.
type RegistryEntry struct {
	Ext    string
	Format Format
}

// Entries returns the registered bindings sorted by extension.
func (r *Registry) Entries() []RegistryEntry {
	entries := make([]RegistryEntry, 0, len(r.formats))
	for ext, format := range r.formats {
		entries = append(entries, RegistryEntry{Ext: ext, Format: format})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Ext < entries[j].Ext })
	return entries
}
