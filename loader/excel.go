package loader

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"chemtab/table"
)

// ExcelLoader loads spreadsheet workbooks through excelize.
//
// Options: "sheet" (string, default first sheet), "header" and "raw" as in
// CSVLoader. Rows shorter than the header are padded with empty cells; cells
// beyond the header width are ignored.
//
// excelize reads OOXML workbooks (.xlsx). A legacy binary .xls file fails at
// open and that failure is the load error.
type ExcelLoader struct{}

func (l *ExcelLoader) Load(path string, opts Options) (*table.Table, error) {
	if err := opts.Allow("sheet", "header", "raw"); err != nil {
		return nil, fmt.Errorf("load workbook %s: %w", path, err)
	}
	sheet, err := opts.String("sheet", "")
	if err != nil {
		return nil, fmt.Errorf("load workbook %s: %w", path, err)
	}
	header, err := opts.Bool("header", true)
	if err != nil {
		return nil, fmt.Errorf("load workbook %s: %w", path, err)
	}
	raw, err := opts.Bool("raw", false)
	if err != nil {
		return nil, fmt.Errorf("load workbook %s: %w", path, err)
	}

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer workbook.Close()

	if sheet == "" {
		sheet = workbook.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("load workbook %s: workbook has no sheets", path)
		}
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read sheet %q of %s: sheet has no rows", sheet, path)
	}

	var headerRow []string
	var dataRows [][]string
	if header {
		headerRow = rows[0]
		dataRows = rows[1:]
	} else {
		width := 0
		for _, row := range rows {
			if len(row) > width {
				width = len(row)
			}
		}
		headerRow = make([]string, width)
		for i := range headerRow {
			headerRow[i] = strconv.Itoa(i)
		}
		dataRows = rows
	}

	shaped := make([][]string, len(dataRows))
	for i, row := range dataRows {
		cells := make([]string, len(headerRow))
		for c := range headerRow {
			if c < len(row) {
				cells[c] = row[c]
			}
		}
		shaped[i] = cells
	}

	tbl, err := table.FromRecords(headerRow, shaped, raw)
	if err != nil {
		return nil, fmt.Errorf("load workbook %s: %w", path, err)
	}
	return tbl, nil
}
