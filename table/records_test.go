package table

import "testing"

func TestFromRecords_PromotesNumberColumns(t *testing.T) {
	t.Parallel()

	tbl, err := FromRecords(
		[]string{"Name", "MW"},
		[][]string{
			{"ethanol", "46.07"},
			{"propanol", "60.1"},
			{"water", "18"},
		},
		false,
	)
	if err != nil {
		t.Fatalf("from records: %v", err)
	}

	col, ok := tbl.Column("MW")
	if !ok {
		t.Fatalf("missing MW column")
	}
	if !col.Values[2].Equal(Number(18)) {
		t.Fatalf("expected numeric 18, got %v", col.Values[2])
	}
	name, _ := tbl.Column("Name")
	if !name.Values[0].Equal(String("ethanol")) {
		t.Fatalf("expected string column to stay strings, got %v", name.Values[0])
	}
}

func TestFromRecords_MixedColumnStaysStrings(t *testing.T) {
	t.Parallel()

	tbl, err := FromRecords(
		[]string{"v"},
		[][]string{{"7"}, {"CCO"}},
		false,
	)
	if err != nil {
		t.Fatalf("from records: %v", err)
	}
	col, _ := tbl.Column("v")
	if !col.Values[0].Equal(String("7")) {
		t.Fatalf("mixed column must keep %q a string, got %v", "7", col.Values[0])
	}
}

func TestFromRecords_BoolLiteralsPromote(t *testing.T) {
	t.Parallel()

	tbl, err := FromRecords(
		[]string{"active"},
		[][]string{{"true"}, {"FALSE"}, {""}},
		false,
	)
	if err != nil {
		t.Fatalf("from records: %v", err)
	}
	col, _ := tbl.Column("active")
	if !col.Values[0].Equal(Bool(true)) || !col.Values[1].Equal(Bool(false)) {
		t.Fatalf("expected bool column, got %v, %v", col.Values[0], col.Values[1])
	}
	if !col.Values[2].IsNull() {
		t.Fatalf("empty cell should be null, got %v", col.Values[2])
	}
}

func TestFromRecords_EmptyCellsAreNullWhenPromoted(t *testing.T) {
	t.Parallel()

	tbl, err := FromRecords(
		[]string{"MW"},
		[][]string{{"46.07"}, {""}},
		false,
	)
	if err != nil {
		t.Fatalf("from records: %v", err)
	}
	col, _ := tbl.Column("MW")
	if !col.Values[1].IsNull() {
		t.Fatalf("expected null for empty cell, got %v", col.Values[1])
	}
}

func TestFromRecords_RawKeepsVerbatimStrings(t *testing.T) {
	t.Parallel()

	tbl, err := FromRecords(
		[]string{"v"},
		[][]string{{"7"}, {""}},
		true,
	)
	if err != nil {
		t.Fatalf("from records: %v", err)
	}
	col, _ := tbl.Column("v")
	if !col.Values[0].Equal(String("7")) {
		t.Fatalf("raw mode must keep strings, got %v", col.Values[0])
	}
	if !col.Values[1].Equal(String("")) {
		t.Fatalf("raw mode keeps empty cells as empty strings, got %v", col.Values[1])
	}
}

func TestFromRecords_RejectsShortRow(t *testing.T) {
	t.Parallel()

	_, err := FromRecords([]string{"a", "b"}, [][]string{{"only"}}, false)
	if err == nil {
		t.Fatalf("expected error for a row with missing cells")
	}
}

func TestFromRecords_DuplicateHeaderRejected(t *testing.T) {
	t.Parallel()

	_, err := FromRecords([]string{"x", "x"}, [][]string{{"1", "2"}}, false)
	if err == nil {
		t.Fatalf("expected error for duplicate header names")
	}
}
