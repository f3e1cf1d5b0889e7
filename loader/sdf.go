package loader

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"chemtab/chem"
	"chemtab/table"
)

// MoleculeColumn is the opaque-handle column structured-record loads publish.
const MoleculeColumn = "Molecule"

// IDColumn carries the record titles of a structured-record file.
const IDColumn = "ID"

// SDFLoader loads MDL SD files. The resulting table carries the record
// titles as "ID" (null when a title is empty), every data item found in the
// file as a string column in first-seen order, the "SMILES" column sourced
// from a data item, and the "Molecule" opaque-handle column wrapping each
// record's raw molblock.
//
// Options: "smiles_property" (string, default "SMILES") names the data item
// the SMILES column reads from; records lacking it get null cells. A file
// whose own data items are named "ID" take that column over the titles; data
// items colliding with the "SMILES" or "Molecule" columns are a load error.
type SDFLoader struct{}

func (l *SDFLoader) Load(path string, opts Options) (*table.Table, error) {
	if err := opts.Allow("smiles_property"); err != nil {
		return nil, fmt.Errorf("load sdf %s: %w", path, err)
	}
	smilesProp, err := opts.String("smiles_property", SMILESColumn)
	if err != nil {
		return nil, fmt.Errorf("load sdf %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sdf file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	records, err := chem.ReadSDF(transform.NewReader(file, decoder))
	if err != nil {
		return nil, fmt.Errorf("read sdf %s: %w", path, err)
	}

	propOrder := make([]string, 0, 8)
	seen := make(map[string]bool)
	hasIDProp := false
	for _, rec := range records {
		for _, p := range rec.Props {
			if p.Name == smilesProp {
				continue
			}
			if p.Name == MoleculeColumn {
				return nil, fmt.Errorf("load sdf %s: data item %q collides with the molecule handle column", path, p.Name)
			}
			if p.Name == SMILESColumn {
				return nil, fmt.Errorf("load sdf %s: data item %q collides with the smiles column (smiles_property is %q)", path, p.Name, smilesProp)
			}
			if !seen[p.Name] {
				seen[p.Name] = true
				propOrder = append(propOrder, p.Name)
				if p.Name == IDColumn {
					hasIDProp = true
				}
			}
		}
	}

	cols := make([]table.Column, 0, len(propOrder)+3)
	if !hasIDProp {
		values := make([]table.Value, len(records))
		for i, rec := range records {
			title := strings.TrimSpace(rec.Title)
			if title == "" {
				values[i] = table.Null()
			} else {
				values[i] = table.String(title)
			}
		}
		cols = append(cols, table.Column{Name: IDColumn, Values: values})
	}
	for _, name := range propOrder {
		values := make([]table.Value, len(records))
		for i, rec := range records {
			if v, ok := rec.Prop(name); ok {
				values[i] = table.String(v)
			} else {
				values[i] = table.Null()
			}
		}
		cols = append(cols, table.Column{Name: name, Values: values})
	}

	smilesValues := make([]table.Value, len(records))
	molValues := make([]table.Value, len(records))
	for i, rec := range records {
		if v, ok := rec.Prop(smilesProp); ok {
			smilesValues[i] = table.String(v)
		} else {
			smilesValues[i] = table.Null()
		}
		molValues[i] = table.MolHandle(table.NewMol(strings.TrimSpace(rec.Title), rec.Molblock))
	}
	cols = append(cols,
		table.Column{Name: SMILESColumn, Values: smilesValues},
		table.Column{Name: MoleculeColumn, Values: molValues},
	)

	tbl, err := table.New(cols...)
	if err != nil {
		return nil, fmt.Errorf("load sdf %s: %w", path, err)
	}
	return tbl, nil
}
