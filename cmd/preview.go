package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"chemtab/internal/cellfmt"
	"chemtab/table"
)

// resolvePreviewLimit picks how many rows to print: --all wins, then an
// explicit --preview value, then the configured default.
func resolvePreviewLimit(all bool, previewFlag, configRows, totalRows int) int {
	if all {
		return totalRows
	}
	if previewFlag > 0 {
		return previewFlag
	}
	return configRows
}

func printTablePreview(out io.Writer, t *table.Table, limit int) error {
	if limit > t.NumRows() {
		limit = t.NumRows()
	}
	if limit < 0 {
		limit = 0
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Columns(), "\t"))
	for i := 0; i < limit; i++ {
		row, err := t.Row(i)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, strings.Join(cellfmt.Row(row), "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if remaining := t.NumRows() - limit; remaining > 0 {
		fmt.Fprintf(out, "... %d more rows\n", remaining)
	}
	return nil
}
