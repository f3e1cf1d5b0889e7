package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"chemtab/table"
)

func compoundsTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.Column{Name: "SMILES", Values: []table.Value{
			table.String("CCO"),
			table.String("c1ccccc1"),
			table.String("CC(=O)O"),
		}},
		table.Column{Name: "MW", Values: []table.Value{
			table.Number(46.07),
			table.Number(78.11),
			table.Null(),
		}},
		table.Column{Name: "Active", Values: []table.Value{
			table.Bool(true),
			table.Bool(false),
			table.Null(),
		}},
	)
	if err != nil {
		t.Fatalf("build fixture table: %v", err)
	}
	return tbl
}

func TestSQLiteStore_SaveAndGetRoundTrip(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	saved := compoundsTable(t)
	id, err := store.SaveDataset("solvents", "solvents.csv", "csv", saved, false)
	if err != nil {
		t.Fatalf("save dataset: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive dataset id, got %d", id)
	}

	ds, loaded, err := store.GetDataset("solvents")
	if err != nil {
		t.Fatalf("get dataset: %v", err)
	}
	if ds.Name != "solvents" || ds.SourceFile != "solvents.csv" || ds.Format != "csv" {
		t.Fatalf("unexpected dataset metadata: %+v", ds)
	}
	if ds.RowCount != 3 || ds.ColCount != 3 {
		t.Fatalf("expected 3x3 dataset, got %dx%d", ds.RowCount, ds.ColCount)
	}
	if !loaded.Equal(saved) {
		t.Fatalf("loaded table differs from saved table")
	}
}

func TestSQLiteStore_RoundTripKeepsMoleculeHandles(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	molblock := "ethanol\n  chemtab\n\n  0  0  0  0  0  0  0  0  0  0999 V2000\nM  END"
	saved, err := table.New(
		table.Column{Name: "ID", Values: []table.Value{table.String("ethanol")}},
		table.Column{Name: "Molecule", Values: []table.Value{table.MolHandle(table.NewMol("ethanol", molblock))}},
	)
	if err != nil {
		t.Fatalf("build fixture table: %v", err)
	}

	if _, err := store.SaveDataset("structures", "one.sdf", "sdf", saved, false); err != nil {
		t.Fatalf("save dataset: %v", err)
	}

	_, loaded, err := store.GetDataset("structures")
	if err != nil {
		t.Fatalf("get dataset: %v", err)
	}
	col, ok := loaded.Column("Molecule")
	if !ok {
		t.Fatalf("expected Molecule column to survive the round trip")
	}
	mol, ok := col.Values[0].AsMol()
	if !ok {
		t.Fatalf("expected a molecule cell, got %v", col.Values[0])
	}
	if mol.Name() != "ethanol" || mol.Molblock() != molblock {
		t.Fatalf("unexpected molecule after round trip: %q", mol.Name())
	}
}

func TestSaveDataset_RejectsDuplicateName(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	tbl := compoundsTable(t)
	if _, err := store.SaveDataset("solvents", "solvents.csv", "csv", tbl, false); err != nil {
		t.Fatalf("save dataset: %v", err)
	}

	_, err = store.SaveDataset("solvents", "solvents_v2.csv", "csv", tbl, false)
	if !errors.Is(err, ErrDatasetExists) {
		t.Fatalf("expected ErrDatasetExists, got %v", err)
	}
}

func TestSaveDataset_OverwriteReplaces(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveDataset("solvents", "solvents.csv", "csv", compoundsTable(t), false); err != nil {
		t.Fatalf("save dataset: %v", err)
	}

	replacement, err := table.New(
		table.Column{Name: "SMILES", Values: []table.Value{table.String("CCN")}},
	)
	if err != nil {
		t.Fatalf("build replacement table: %v", err)
	}
	if _, err := store.SaveDataset("solvents", "amines.smi", "smiles", replacement, true); err != nil {
		t.Fatalf("overwrite dataset: %v", err)
	}

	ds, loaded, err := store.GetDataset("solvents")
	if err != nil {
		t.Fatalf("get dataset: %v", err)
	}
	if ds.SourceFile != "amines.smi" || ds.Format != "smiles" {
		t.Fatalf("expected replaced metadata, got %+v", ds)
	}
	if !loaded.Equal(replacement) {
		t.Fatalf("expected replaced contents after overwrite")
	}

	listed, err := store.ListDatasets()
	if err != nil {
		t.Fatalf("list datasets: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 dataset after overwrite, got %d", len(listed))
	}
}

func TestListDatasets_OrderedByName(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	tbl := compoundsTable(t)
	if _, err := store.SaveDataset("screening", "screen.sdf", "sdf", tbl, false); err != nil {
		t.Fatalf("save dataset: %v", err)
	}
	if _, err := store.SaveDataset("fragments", "frags.smi", "smiles", tbl, false); err != nil {
		t.Fatalf("save dataset: %v", err)
	}

	listed, err := store.ListDatasets()
	if err != nil {
		t.Fatalf("list datasets: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(listed))
	}
	if listed[0].Name != "fragments" || listed[1].Name != "screening" {
		t.Fatalf("expected name order fragments, screening; got %q, %q", listed[0].Name, listed[1].Name)
	}
	if listed[0].RowCount != 3 || listed[0].ColCount != 3 {
		t.Fatalf("unexpected counts: %+v", listed[0])
	}
	if listed[0].CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestGetDataset_NotFound(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	_, _, err = store.GetDataset("missing")
	if !errors.Is(err, ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestDeleteDataset_Removes(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveDataset("solvents", "solvents.csv", "csv", compoundsTable(t), false); err != nil {
		t.Fatalf("save dataset: %v", err)
	}

	removed, err := store.DeleteDataset("solvents")
	if err != nil {
		t.Fatalf("delete dataset: %v", err)
	}
	if !removed {
		t.Fatalf("expected removed=true")
	}

	listed, err := store.ListDatasets()
	if err != nil {
		t.Fatalf("list datasets: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty store after delete, got %d", len(listed))
	}
}

func TestDeleteDataset_NotFound(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	removed, err := store.DeleteDataset("missing")
	if err != nil {
		t.Fatalf("delete dataset: %v", err)
	}
	if removed {
		t.Fatalf("expected removed=false for missing name")
	}
}

func TestDeleteAllDatasets(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	tbl := compoundsTable(t)
	if _, err := store.SaveDataset("screening", "screen.sdf", "sdf", tbl, false); err != nil {
		t.Fatalf("save dataset: %v", err)
	}
	if _, err := store.SaveDataset("fragments", "frags.smi", "smiles", tbl, false); err != nil {
		t.Fatalf("save dataset: %v", err)
	}

	deleted, err := store.DeleteAllDatasets()
	if err != nil {
		t.Fatalf("delete all datasets: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted datasets, got %d", deleted)
	}

	listed, err := store.ListDatasets()
	if err != nil {
		t.Fatalf("list datasets: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty store after delete, got %d", len(listed))
	}
}

func TestSQLiteStore_EmptyTableKeepsColumns(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "chemtab_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	empty, err := table.New(
		table.Column{Name: "SMILES"},
		table.Column{Name: "MW"},
	)
	if err != nil {
		t.Fatalf("build empty table: %v", err)
	}
	if _, err := store.SaveDataset("empty", "empty.csv", "csv", empty, false); err != nil {
		t.Fatalf("save dataset: %v", err)
	}

	ds, loaded, err := store.GetDataset("empty")
	if err != nil {
		t.Fatalf("get dataset: %v", err)
	}
	if ds.RowCount != 0 || ds.ColCount != 2 {
		t.Fatalf("expected 0x2 dataset, got %dx%d", ds.RowCount, ds.ColCount)
	}
	if loaded.NumRows() != 0 {
		t.Fatalf("expected 0 rows, got %d", loaded.NumRows())
	}
	if got := loaded.Columns(); len(got) != 2 || got[0] != "SMILES" || got[1] != "MW" {
		t.Fatalf("unexpected columns: %v", got)
	}
}
