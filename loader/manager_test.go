package loader

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"chemtab/table"
)

// tenCompounds mirrors a small drug screening deck. Suloctidil sits at row 5
// and disulfiram at row 7, so membership filters can be checked against
// original row order.
func tenCompounds() []sdfEntry {
	return []sdfEntry{
		{name: "aspirin", formula: "C9H8O4", smiles: "CC(=O)Oc1ccccc1C(=O)O"},
		{name: "caffeine", formula: "C8H10N4O2", smiles: "Cn1cnc2c1c(=O)n(C)c(=O)n2C"},
		{name: "ibuprofen", formula: "C13H18O2", smiles: "CC(C)Cc1ccc(cc1)C(C)C(=O)O"},
		{name: "paracetamol", formula: "C8H9NO2", smiles: "CC(=O)Nc1ccc(O)cc1"},
		{name: "benzene", formula: "C6H6", smiles: "c1ccccc1"},
		{name: "suloctidil", formula: "C20H35NOS", smiles: "CCCCCCCCNC(C)C(O)c1ccc(SC(C)C)cc1"},
		{name: "naphthalene", formula: "C10H8", smiles: "c1ccc2ccccc2c1"},
		{name: "disulfiram", formula: "C10H20N2S4", smiles: "CCN(CC)C(=S)SSC(=S)N(CC)CC"},
		{name: "ethanol", formula: "C2H6O", smiles: "CCO"},
		{name: "toluene", formula: "C7H8", smiles: "Cc1ccccc1"},
	}
}

func writeTenCompoundSDF(t *testing.T) string {
	t.Helper()
	return writeFixture(t, "deck.sdf", sdfFixture(tenCompounds()))
}

func TestManager_DispatchesByExtension(t *testing.T) {
	t.Parallel()

	manager := NewManager()

	csvPath := writeFixture(t, "mols.csv", "Name,MW\nethanol,46.07\n")
	tbl, err := manager.Load(csvPath, nil, nil)
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	if !tbl.HasColumn("MW") {
		t.Fatalf("csv dispatch produced wrong columns: %v", tbl.Columns())
	}

	smiPath := writeFixture(t, "mols.smi", "SMILES\nCCO\n")
	tbl, err = manager.Load(smiPath, nil, nil)
	if err != nil {
		t.Fatalf("load smi: %v", err)
	}
	if tbl.NumCols() != 1 || !tbl.HasColumn(SMILESColumn) {
		t.Fatalf("smi dispatch produced wrong columns: %v", tbl.Columns())
	}

	sdfPath := writeFixture(t, "mols.sdf", sdfFixture([]sdfEntry{{name: "ethanol", formula: "C2H6O", smiles: "CCO"}}))
	tbl, err = manager.Load(sdfPath, nil, nil)
	if err != nil {
		t.Fatalf("load sdf: %v", err)
	}
	if !tbl.HasColumn(MoleculeColumn) || !tbl.HasColumn(SMILESColumn) {
		t.Fatalf("sdf dispatch produced wrong columns: %v", tbl.Columns())
	}
}

func TestManager_UnknownExtensionRejectedBeforeAnyIO(t *testing.T) {
	t.Parallel()

	// The path does not exist; a resolve failure must come first.
	_, err := NewManager().Load(filepath.Join(t.TempDir(), "nope", "data.unknownext"), nil, nil)
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if unsupported.Ext != ".unknownext" {
		t.Fatalf("expected error to carry the extension, got %q", unsupported.Ext)
	}
}

func TestManager_MixedCaseExtensionIsNotFuzzyMatched(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "DATA.CSV", "a,b\n1,2\n")
	_, err := NewManager().Load(path, nil, nil)
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError for .CSV, got %v", err)
	}
}

func TestManager_NilAndEmptyFiltersMatchUnfiltered(t *testing.T) {
	t.Parallel()

	path := writeTenCompoundSDF(t)
	manager := NewManager()

	unfiltered, err := manager.Load(path, nil, nil)
	if err != nil {
		t.Fatalf("load unfiltered: %v", err)
	}
	if unfiltered.NumRows() != 10 {
		t.Fatalf("expected 10 rows, got %d", unfiltered.NumRows())
	}

	withNil, err := manager.Load(path, nil, nil)
	if err != nil {
		t.Fatalf("load with nil filters: %v", err)
	}
	withEmpty, err := manager.Load(path, NewFilterSpec(), nil)
	if err != nil {
		t.Fatalf("load with empty filters: %v", err)
	}
	if !unfiltered.Equal(withNil) || !unfiltered.Equal(withEmpty) {
		t.Fatalf("nil and empty filter specs must match the unfiltered load")
	}
}

func TestManager_SingleSMILESFilterKeepsOneRow(t *testing.T) {
	t.Parallel()

	path := writeTenCompoundSDF(t)
	filters := NewFilterSpec().Where(SMILESColumn, "CCN(CC)C(=S)SSC(=S)N(CC)CC")
	tbl, err := NewManager().Load(path, filters, nil)
	if err != nil {
		t.Fatalf("load filtered: %v", err)
	}
	if tbl.NumRows() != 1 {
		t.Fatalf("expected exactly 1 row, got %d", tbl.NumRows())
	}
	id, _ := tbl.Column("ID")
	if !id.Values[0].Equal(table.String("disulfiram")) {
		t.Fatalf("wrong row survived: %v", id.Values[0])
	}
}

func TestManager_TwoSMILESFilterKeepsOriginalRelativeOrder(t *testing.T) {
	t.Parallel()

	path := writeTenCompoundSDF(t)
	filters := NewFilterSpec().Where(SMILESColumn,
		"CCN(CC)C(=S)SSC(=S)N(CC)CC",
		"CCCCCCCCNC(C)C(O)c1ccc(SC(C)C)cc1",
	)
	tbl, err := NewManager().Load(path, filters, nil)
	if err != nil {
		t.Fatalf("load filtered: %v", err)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.NumRows())
	}
	id, _ := tbl.Column("ID")
	if !id.Values[0].Equal(table.String("suloctidil")) || !id.Values[1].Equal(table.String("disulfiram")) {
		t.Fatalf("rows must keep original order (lower index first): %v, %v", id.Values[0], id.Values[1])
	}
}

func TestManager_EmptyListFilterYieldsZeroRows(t *testing.T) {
	t.Parallel()

	path := writeTenCompoundSDF(t)
	tbl, err := NewManager().Load(path, NewFilterSpec().Where(SMILESColumn), nil)
	if err != nil {
		t.Fatalf("load filtered: %v", err)
	}
	if tbl.NumRows() != 0 {
		t.Fatalf("expected 0 rows for an empty accepted list, got %d", tbl.NumRows())
	}
}

func TestManager_UnknownFilterColumnRejected(t *testing.T) {
	t.Parallel()

	path := writeTenCompoundSDF(t)
	_, err := NewManager().Load(path, NewFilterSpec().Where("NotAColumn", "x"), nil)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
}

func TestManager_LoaderErrorsPropagateUnchanged(t *testing.T) {
	t.Parallel()

	_, err := NewManager().Load(filepath.Join(t.TempDir(), "absent.csv"), nil, nil)
	if err == nil {
		t.Fatalf("expected error for a missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected the loader's file error to survive, got %v", err)
	}
}

func TestManager_OptionsForwardedVerbatim(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "mols.csv", "Name;MW\nethanol;46.07\n")
	tbl, err := NewManager().Load(path, nil, Options{"delimiter": ";"})
	if err != nil {
		t.Fatalf("load with options: %v", err)
	}
	if !tbl.HasColumn("MW") {
		t.Fatalf("delimiter option not honored: %v", tbl.Columns())
	}

	_, err = NewManager().Load(path, nil, Options{"delimiter": ";", "sheet": "x"})
	if err == nil {
		t.Fatalf("expected the loader to reject an option it does not know")
	}
}

func TestManager_FilterOnNumberColumnLoadedFromCSV(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "mols.csv", "Name,MW\nethanol,46.07\nbenzene,78.11\n")
	tbl, err := NewManager().Load(path, NewFilterSpec().Where("MW", 46.07), nil)
	if err != nil {
		t.Fatalf("load filtered: %v", err)
	}
	if tbl.NumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", tbl.NumRows())
	}
	name, _ := tbl.Column("Name")
	if !name.Values[0].Equal(table.String("ethanol")) {
		t.Fatalf("wrong row survived: %v", name.Values[0])
	}
}
