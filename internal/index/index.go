// Package index persists scan results into a SQLite attribute index so
// a dataset can be queried by attribute without re-walking the tree.
package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/agentic-research/strata/internal/scan"
)

// Writer streams scan entries into a SQLite database. Inserts run
// inside batched transactions with prepared statements; Close commits
// the tail batch.
type Writer struct {
	db        *sql.DB
	tx        *sql.Tx
	stmtClear *sql.Stmt
	stmtFile  *sql.Stmt
	stmtAttr  *sql.Stmt
	batchSize int
	count     int
}

// NewWriter opens (or creates) the database at dbPath and initializes
// the schema.
func NewWriter(dbPath string) (*Writer, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Bulk-insert tuning; the index is rebuilt from scratch on loss.
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY,
		path TEXT NOT NULL UNIQUE
	);
	CREATE TABLE IF NOT EXISTS attrs (
		file_id INTEGER NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (file_id, key)
	) WITHOUT ROWID;
	CREATE INDEX IF NOT EXISTS idx_attrs_kv ON attrs(key, value);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	w := &Writer{db: db, batchSize: 1000}
	if err := w.beginTx(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) beginTx() error {
	var err error
	w.tx, err = w.db.Begin()
	if err != nil {
		return err
	}
	// Replacing a files row assigns a fresh id, so the old row's attrs
	// must go before the replace or they sit orphaned forever.
	w.stmtClear, err = w.tx.Prepare(`DELETE FROM attrs WHERE file_id = (SELECT id FROM files WHERE path = ?)`)
	if err != nil {
		return err
	}
	w.stmtFile, err = w.tx.Prepare(`INSERT OR REPLACE INTO files (path) VALUES (?)`)
	if err != nil {
		return err
	}
	w.stmtAttr, err = w.tx.Prepare(`INSERT OR REPLACE INTO attrs (file_id, key, value) VALUES (?, ?, ?)`)
	return err
}

// Add writes one entry and its attributes.
func (w *Writer) Add(e scan.Entry) error {
	if _, err := w.stmtClear.Exec(e.Path); err != nil {
		return fmt.Errorf("clear attrs for %s: %w", e.Path, err)
	}
	res, err := w.stmtFile.Exec(e.Path)
	if err != nil {
		return fmt.Errorf("insert file %s: %w", e.Path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for k, v := range e.Attrs {
		if _, err := w.stmtAttr.Exec(id, k, v); err != nil {
			return fmt.Errorf("insert attr %s=%s for %s: %w", k, v, e.Path, err)
		}
	}
	w.count++
	if w.count%w.batchSize == 0 {
		if err := w.tx.Commit(); err != nil {
			return err
		}
		return w.beginTx()
	}
	return nil
}

// Close commits pending inserts and closes the database.
func (w *Writer) Close() error {
	if w.tx != nil {
		if err := w.tx.Commit(); err != nil {
			_ = w.db.Close()
			return err
		}
	}
	return w.db.Close()
}

// Query returns the paths of indexed files whose attribute key equals
// value, sorted by path.
func Query(dbPath, key, value string) ([]string, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`
		SELECT f.path FROM files f
		JOIN attrs a ON a.file_id = f.id
		WHERE a.key = ? AND a.value = ?
		ORDER BY f.path`, key, value)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
