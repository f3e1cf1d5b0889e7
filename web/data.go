package web

import (
	"net/url"

	"chemtab/internal/cellfmt"
	"chemtab/storage"
	"chemtab/table"
)

// DatasetRow is the list-page view of one stored dataset.
type DatasetRow struct {
	Name       string
	SourceFile string
	Format     string
	RowCount   int
	ColCount   int
	Created    string
	Link       string
}

// TableView is one rendered page of a table: column names plus display cells.
type TableView struct {
	Columns   []string
	Rows      [][]string
	TotalRows int
	Page      int
	PageCount int
}

func BuildDatasetList(datasets []storage.Dataset) []DatasetRow {
	rows := make([]DatasetRow, 0, len(datasets))
	for _, ds := range datasets {
		rows = append(rows, DatasetRow{
			Name:       ds.Name,
			SourceFile: ds.SourceFile,
			Format:     ds.Format,
			RowCount:   ds.RowCount,
			ColCount:   ds.ColCount,
			Created:    ds.CreatedAt.Format("2006-01-02 15:04"),
			Link:       "/dataset/" + url.PathEscape(ds.Name),
		})
	}
	return rows
}

// BuildTableView renders one page of a table for display. The page number is
// clamped into the valid range.
func BuildTableView(t *table.Table, page, pageSize int) TableView {
	start, end, page, pageCount := PageBounds(t.NumRows(), page, pageSize)

	view := TableView{
		Columns:   t.Columns(),
		Rows:      make([][]string, 0, end-start),
		TotalRows: t.NumRows(),
		Page:      page,
		PageCount: pageCount,
	}
	for i := start; i < end; i++ {
		row, err := t.Row(i)
		if err != nil {
			break
		}
		view.Rows = append(view.Rows, cellfmt.Row(row))
	}
	return view
}

// PageBounds computes the half-open row range [start, end) of a 1-based page,
// clamping the page into range. An empty table yields one empty page.
func PageBounds(totalRows, page, pageSize int) (start, end, clampedPage, pageCount int) {
	if pageSize < 1 {
		pageSize = 1
	}
	pageCount = (totalRows + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	start = (page - 1) * pageSize
	end = start + pageSize
	if end > totalRows {
		end = totalRows
	}
	if start > totalRows {
		start = totalRows
	}
	return start, end, page, pageCount
}
