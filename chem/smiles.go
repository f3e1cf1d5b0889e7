package chem

import (
	"fmt"
	"io"
	"strings"
)

// SMILESOptions controls how a SMILES line-notation file is read.
type SMILESOptions struct {
	// Delimiter splits each line into fields. Empty means any run of spaces
	// or tabs.
	Delimiter string
	// TitleLine skips the first line of the file.
	TitleLine bool
	// SMILESColumn is the zero-based field index holding the SMILES string.
	SMILESColumn int
}

// ReadSMILES reads one SMILES string per line. The strings are opaque text;
// no molecular validation happens here. Blank interior lines and lines with
// too few fields are errors carrying the line number.
func ReadSMILES(r io.Reader, o SMILESOptions) ([]string, error) {
	if o.SMILESColumn < 0 {
		return nil, fmt.Errorf("smiles column %d is negative", o.SMILESColumn)
	}
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	start := 0
	if o.TitleLine && len(lines) > 0 {
		start = 1
	}

	smiles := make([]string, 0, len(lines))
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			return nil, fmt.Errorf("line %d: blank line", i+1)
		}
		fields := splitFields(line, o.Delimiter)
		if o.SMILESColumn >= len(fields) {
			return nil, fmt.Errorf("line %d: %d fields, smiles column %d out of range", i+1, len(fields), o.SMILESColumn)
		}
		field := fields[o.SMILESColumn]
		if field == "" {
			return nil, fmt.Errorf("line %d: empty smiles field", i+1)
		}
		smiles = append(smiles, field)
	}
	return smiles, nil
}

func splitFields(line, delimiter string) []string {
	if delimiter == "" {
		return strings.Fields(line)
	}
	return strings.Split(line, delimiter)
}
