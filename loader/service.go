package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"chemtab/config"
	"chemtab/table"
)

// DatasetSaver persists a loaded table under a name. *storage.SQLiteStore
// satisfies it.
type DatasetSaver interface {
	SaveDataset(name, sourceFile, format string, t *table.Table, overwrite bool) (int64, error)
}

type RunResult struct {
	FilesProcessed int
	RowsLoaded     int
	RowsKept       int
	DatasetsSaved  int
	Tables         []LoadedTable
}

// LoadedTable is one file's outcome within a run.
type LoadedTable struct {
	Path    string
	Format  Format
	Rule    string
	Dataset string
	Table   *table.Table
}

type RunOptions struct {
	// Format is an explicit format token (csv, excel, smiles, sdf). It
	// overrides both matched rules and extension dispatch.
	Format string

	// Options are per-call loader options, merged key-wise over the options
	// of a matched rule.
	Options Options

	Filters *FilterSpec

	// Store enables persistence; nil loads without saving.
	Store       DatasetSaver
	DatasetName string
	Overwrite   bool
}

// Run loads each path into a table, applying matched config rules, the filter
// pipeline and optional persistence to the dataset store.
func Run(paths []string, cfg config.Config, options RunOptions) (*RunResult, error) {
	if options.DatasetName != "" && len(paths) != 1 {
		return nil, fmt.Errorf("dataset name %q applies to a single file, got %d files", options.DatasetName, len(paths))
	}

	registry := DefaultRegistry()
	result := &RunResult{Tables: make([]LoadedTable, 0, len(paths))}
	for _, path := range paths {
		rule := MatchRuleByTemplate(path, cfg.Rules)
		format, err := resolveFormat(registry, path, options.Format, rule.Format)
		if err != nil {
			return nil, err
		}

		ldr, err := format.NewLoader()
		if err != nil {
			return nil, err
		}
		t, err := ldr.Load(path, mergeOptions(rule.Options, options.Options))
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsLoaded += t.NumRows()

		filtered, err := options.Filters.Apply(t)
		if err != nil {
			return nil, err
		}
		result.RowsKept += filtered.NumRows()

		loaded := LoadedTable{Path: path, Format: format, Rule: rule.Name, Table: filtered}
		if options.Store != nil {
			name := options.DatasetName
			if name == "" {
				name, err = datasetNameForPath(path)
				if err != nil {
					return nil, err
				}
			}
			if _, err := options.Store.SaveDataset(name, path, format.String(), filtered, options.Overwrite); err != nil {
				return nil, err
			}
			result.DatasetsSaved++
			loaded.Dataset = name
		}
		result.Tables = append(result.Tables, loaded)
	}

	return result, nil
}

// MatchRuleByTemplate returns the first rule whose file template matches the
// path's base name or the full path. The zero Rule means no match.
func MatchRuleByTemplate(path string, rules []config.Rule) config.Rule {
	baseName := filepath.Base(path)
	for _, rule := range rules {
		template := strings.TrimSpace(rule.FileTemplate)
		if template == "" {
			continue
		}
		matchesBase, err := filepath.Match(template, baseName)
		if err == nil && matchesBase {
			return rule
		}
		matchesFull, err := filepath.Match(template, path)
		if err == nil && matchesFull {
			return rule
		}
	}
	return config.Rule{}
}

func resolveFormat(registry *Registry, path, override, ruleFormat string) (Format, error) {
	if token := strings.TrimSpace(override); token != "" {
		return ParseFormat(token)
	}
	if token := strings.TrimSpace(ruleFormat); token != "" {
		return ParseFormat(token)
	}
	return registry.Resolve(filepath.Ext(path))
}

func mergeOptions(ruleOptions map[string]any, callOptions Options) Options {
	if len(ruleOptions) == 0 && len(callOptions) == 0 {
		return nil
	}
	merged := make(Options, len(ruleOptions)+len(callOptions))
	for key, value := range ruleOptions {
		merged[key] = value
	}
	for key, value := range callOptions {
		merged[key] = value
	}
	return merged
}

func datasetNameForPath(path string) (string, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("cannot derive a dataset name from %s", path)
	}
	return name, nil
}
