package tables

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"horarios/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS table_rows (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	table_name TEXT NOT NULL,
	row_key    TEXT NOT NULL,
	cells      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_table_rows_key ON table_rows(table_name, row_key);
`

// SQLiteStore keeps every table in one embedded database, keyed by (table, identifier).
// A merge deletes and inserts inside a single transaction, so concurrent merges for
// different identifiers cannot lose each other's rows.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLite creates or opens the database at path.
func OpenSQLite(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open table database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply table schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Merge(ctx context.Context, t Table, key string, rows []models.TableRow) error {
	key = NormalizeKey(key)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mergeErr(t, ErrWriteFailed, err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM table_rows WHERE table_name = ? AND row_key = ?`, t.Name, key); err != nil {
		return mergeErr(t, ErrWriteFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO table_rows (table_name, row_key, cells) VALUES (?, ?, ?)`)
	if err != nil {
		return mergeErr(t, ErrWriteFailed, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return mergeErr(t, ErrWriteFailed, err)
		}
		if _, err := stmt.ExecContext(ctx, t.Name, key, string(cells)); err != nil {
			return mergeErr(t, ErrWriteFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mergeErr(t, ErrWriteFailed, err)
	}
	s.logger.Debug("table merged", zap.String("table", t.Name), zap.String("key", key), zap.Int("newRows", len(rows)))
	return nil
}

func (s *SQLiteStore) Rows(ctx context.Context, t Table) ([]string, []models.TableRow, error) {
	res, err := s.db.QueryContext(ctx,
		`SELECT cells FROM table_rows WHERE table_name = ? ORDER BY seq`, t.Name)
	if err != nil {
		return nil, nil, &MergeError{Table: t.Name, Err: err}
	}
	defer res.Close()

	var rows []models.TableRow
	for res.Next() {
		var raw string
		if err := res.Scan(&raw); err != nil {
			return nil, nil, &MergeError{Table: t.Name, Err: err}
		}
		var row models.TableRow
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, nil, mergeErr(t, ErrCorruptSource, err)
		}
		rows = append(rows, row)
	}
	if err := res.Err(); err != nil {
		return nil, nil, &MergeError{Table: t.Name, Err: err}
	}
	return unionColumns(t.Columns, rows), rows, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
