package loader

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"chemtab/chem"
	"chemtab/table"
)

// SMILESColumn is the column name line-notation and structured-record
// loaders publish SMILES strings under.
const SMILESColumn = "SMILES"

// SMILESLoader loads SMILES line-notation files into a single SMILES string
// column.
//
// Options: "delimiter" (string, default any run of spaces or tabs),
// "title_line" (bool, default true: the first line is a header and is
// skipped), "smiles_column" (int, default 0: zero-based field index holding
// the SMILES string).
type SMILESLoader struct{}

func (l *SMILESLoader) Load(path string, opts Options) (*table.Table, error) {
	if err := opts.Allow("delimiter", "title_line", "smiles_column"); err != nil {
		return nil, fmt.Errorf("load smiles %s: %w", path, err)
	}
	delimiter, err := opts.String("delimiter", "")
	if err != nil {
		return nil, fmt.Errorf("load smiles %s: %w", path, err)
	}
	titleLine, err := opts.Bool("title_line", true)
	if err != nil {
		return nil, fmt.Errorf("load smiles %s: %w", path, err)
	}
	smilesColumn, err := opts.Int("smiles_column", 0)
	if err != nil {
		return nil, fmt.Errorf("load smiles %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open smiles file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	smiles, err := chem.ReadSMILES(transform.NewReader(file, decoder), chem.SMILESOptions{
		Delimiter:    delimiter,
		TitleLine:    titleLine,
		SMILESColumn: smilesColumn,
	})
	if err != nil {
		return nil, fmt.Errorf("read smiles %s: %w", path, err)
	}

	values := make([]table.Value, len(smiles))
	for i, s := range smiles {
		values[i] = table.String(s)
	}
	tbl, err := table.New(table.Column{Name: SMILESColumn, Values: values})
	if err != nil {
		return nil, fmt.Errorf("load smiles %s: %w", path, err)
	}
	return tbl, nil
}
