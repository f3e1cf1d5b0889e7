package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chemtab/table"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var (
	ErrDatasetExists   = errors.New("dataset already exists")
	ErrDatasetNotFound = errors.New("dataset not found")
)

// Dataset is the stored metadata of one saved table.
type Dataset struct {
	ID         int64
	Name       string
	SourceFile string
	Format     string
	RowCount   int
	ColCount   int
	CreatedAt  time.Time
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	// Cells are stored per row as a JSON array in table column order, so one
	// dataset_rows row round-trips to one table row without a per-cell table.
	const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	source_file TEXT NOT NULL,
	format TEXT NOT NULL,
	row_count INTEGER NOT NULL CHECK(row_count >= 0),
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS dataset_columns (
	dataset_id INTEGER NOT NULL REFERENCES datasets(id),
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (dataset_id, position)
);

CREATE TABLE IF NOT EXISTS dataset_rows (
	dataset_id INTEGER NOT NULL REFERENCES datasets(id),
	position INTEGER NOT NULL,
	cells TEXT NOT NULL,
	PRIMARY KEY (dataset_id, position)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// SaveDataset stores a table under the given name. An existing dataset with
// the same name fails with ErrDatasetExists unless overwrite is set, in which
// case it is replaced in the same transaction.
func (s *SQLiteStore) SaveDataset(name, sourceFile, format string, t *table.Table, overwrite bool) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("dataset name must not be empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	var existingID int64
	err = tx.QueryRow(`SELECT id FROM datasets WHERE name = ?;`, name).Scan(&existingID)
	switch {
	case err == nil:
		if !overwrite {
			_ = tx.Rollback()
			return 0, fmt.Errorf("dataset %q: %w", name, ErrDatasetExists)
		}
		if err := deleteDatasetTx(tx, existingID); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	case errors.Is(err, sql.ErrNoRows):
		// First save under this name.
	default:
		_ = tx.Rollback()
		return 0, fmt.Errorf("query dataset %q: %w", name, err)
	}

	res, err := tx.Exec(
		`INSERT INTO datasets (name, source_file, format, row_count, created_at) VALUES (?, ?, ?, ?, ?);`,
		name,
		sourceFile,
		format,
		t.NumRows(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert dataset %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read inserted dataset id: %w", err)
	}

	colStmt, err := tx.Prepare(`INSERT INTO dataset_columns (dataset_id, position, name) VALUES (?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare column insert statement: %w", err)
	}
	defer colStmt.Close()

	for i, colName := range t.Columns() {
		if _, err := colStmt.Exec(id, i, colName); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert column %q: %w", colName, err)
		}
	}

	rowStmt, err := tx.Prepare(`INSERT INTO dataset_rows (dataset_id, position, cells) VALUES (?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare row insert statement: %w", err)
	}
	defer rowStmt.Close()

	for i := 0; i < t.NumRows(); i++ {
		row, err := t.Row(i)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("read row %d: %w", i, err)
		}
		cells, err := json.Marshal(row)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("encode row %d: %w", i, err)
		}
		if _, err := rowStmt.Exec(id, i, string(cells)); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return id, nil
}

// ListDatasets returns metadata for every stored dataset, ordered by name.
func (s *SQLiteStore) ListDatasets() ([]Dataset, error) {
	const query = `
SELECT
	d.id,
	d.name,
	d.source_file,
	d.format,
	d.row_count,
	d.created_at,
	(SELECT COUNT(*) FROM dataset_columns c WHERE c.dataset_id = d.id)
FROM datasets d
ORDER BY d.name;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	datasets := make([]Dataset, 0, 16)
	for rows.Next() {
		var (
			ds         Dataset
			createdRaw string
		)
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.SourceFile, &ds.Format, &ds.RowCount, &createdRaw, &ds.ColCount); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		ds.CreatedAt, err = time.Parse(time.RFC3339, createdRaw)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
		}
		datasets = append(datasets, ds)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate datasets: %w", err)
	}

	return datasets, nil
}

// GetDataset loads the named dataset back into a table, restoring column
// order, row order and cell kinds.
func (s *SQLiteStore) GetDataset(name string) (Dataset, *table.Table, error) {
	const query = `SELECT id, name, source_file, format, row_count, created_at FROM datasets WHERE name = ?;`

	var (
		ds         Dataset
		createdRaw string
	)
	err := s.db.QueryRow(query, name).Scan(&ds.ID, &ds.Name, &ds.SourceFile, &ds.Format, &ds.RowCount, &createdRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Dataset{}, nil, fmt.Errorf("dataset %q: %w", name, ErrDatasetNotFound)
		}
		return Dataset{}, nil, fmt.Errorf("query dataset %q: %w", name, err)
	}
	ds.CreatedAt, err = time.Parse(time.RFC3339, createdRaw)
	if err != nil {
		return Dataset{}, nil, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}

	cols, err := s.datasetColumns(ds.ID)
	if err != nil {
		return Dataset{}, nil, err
	}
	ds.ColCount = len(cols)

	rows, err := s.db.Query(`SELECT position, cells FROM dataset_rows WHERE dataset_id = ? ORDER BY position;`, ds.ID)
	if err != nil {
		return Dataset{}, nil, fmt.Errorf("query rows of dataset %q: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			position int
			cellsRaw string
		)
		if err := rows.Scan(&position, &cellsRaw); err != nil {
			return Dataset{}, nil, fmt.Errorf("scan row of dataset %q: %w", name, err)
		}
		var cells []table.Value
		if err := json.Unmarshal([]byte(cellsRaw), &cells); err != nil {
			return Dataset{}, nil, fmt.Errorf("decode row %d of dataset %q: %w", position, name, err)
		}
		if len(cells) != len(cols) {
			return Dataset{}, nil, fmt.Errorf("row %d of dataset %q has %d cells, want %d", position, name, len(cells), len(cols))
		}
		for i, cell := range cells {
			cols[i].Values = append(cols[i].Values, cell)
		}
	}
	if err := rows.Err(); err != nil {
		return Dataset{}, nil, fmt.Errorf("iterate rows of dataset %q: %w", name, err)
	}

	t, err := table.New(cols...)
	if err != nil {
		return Dataset{}, nil, fmt.Errorf("rebuild dataset %q: %w", name, err)
	}
	return ds, t, nil
}

func (s *SQLiteStore) datasetColumns(id int64) ([]table.Column, error) {
	rows, err := s.db.Query(`SELECT name FROM dataset_columns WHERE dataset_id = ? ORDER BY position;`, id)
	if err != nil {
		return nil, fmt.Errorf("query columns of dataset %d: %w", id, err)
	}
	defer rows.Close()

	var cols []table.Column
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column of dataset %d: %w", id, err)
		}
		cols = append(cols, table.Column{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns of dataset %d: %w", id, err)
	}
	return cols, nil
}

// DeleteDataset removes the named dataset and its columns and rows. It
// reports false when no dataset with that name exists.
func (s *SQLiteStore) DeleteDataset(name string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}

	var id int64
	err = tx.QueryRow(`SELECT id FROM datasets WHERE name = ?;`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Rollback()
		return false, nil
	}
	if err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("query dataset %q: %w", name, err)
	}

	if err := deleteDatasetTx(tx, id); err != nil {
		_ = tx.Rollback()
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete transaction: %w", err)
	}
	return true, nil
}

// DeleteAllDatasets removes every stored dataset and returns how many were
// deleted.
func (s *SQLiteStore) DeleteAllDatasets() (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM dataset_rows;`); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("delete dataset rows: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM dataset_columns;`); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("delete dataset columns: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM datasets;`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("delete datasets: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete transaction: %w", err)
	}
	return deleted, nil
}

func deleteDatasetTx(tx *sql.Tx, id int64) error {
	if _, err := tx.Exec(`DELETE FROM dataset_rows WHERE dataset_id = ?;`, id); err != nil {
		return fmt.Errorf("delete rows of dataset %d: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM dataset_columns WHERE dataset_id = ?;`, id); err != nil {
		return fmt.Errorf("delete columns of dataset %d: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM datasets WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("delete dataset %d: %w", id, err)
	}
	return nil
}
