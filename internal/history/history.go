// Package history keeps a record of completed relabel runs in a SQLite
// database under the user's state directory.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one completed relabel invocation.
type Run struct {
	ID        int64
	Input     string
	Output    string
	Column    string
	Clusters  int
	Rows      int
	Reverse   bool
	CreatedAt time.Time
}

// Store provides persistent run history backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		input        TEXT NOT NULL,
		output       TEXT NOT NULL,
		label_column TEXT NOT NULL DEFAULT '',
		clusters     INTEGER NOT NULL,
		row_count    INTEGER NOT NULL,
		reverse      INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("migrate history db: %w", err)
	}
	return nil
}

// Record inserts a run row. Failures are logged and otherwise ignored; a
// history problem never fails the transform itself.
func (s *Store) Record(r Run) {
	reverse := 0
	if r.Reverse {
		reverse = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (input, output, label_column, clusters, row_count, reverse, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Input, r.Output, r.Column, r.Clusters, r.Rows, reverse,
		r.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		slog.Warn("history: record failed", "error", err)
	}
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(n int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, input, output, label_column, clusters, row_count, reverse, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var reverse int
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Input, &r.Output, &r.Column, &r.Clusters, &r.Rows, &reverse, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Reverse = reverse != 0
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
