// Package storage persists local client state (identity, tokens, theme
// preference, diagnostic blobs) in a sqlite file under the config dir.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNoRows = errors.New("no rows")

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite file at path and runs migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const sqlStmt = `
CREATE TABLE IF NOT EXISTS session (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS diagnostics (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL -- unix micro
);
`
	_, err := s.db.Exec(sqlStmt)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) setKV(table, key, value string) error {
	q := fmt.Sprintf(`
INSERT INTO %s (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;
`, table)
	if _, err := s.db.Exec(q, key, value); err != nil {
		return fmt.Errorf("set %s %q: %w", table, key, err)
	}
	return nil
}

func (s *Store) getKV(table, key string) (string, error) {
	q := fmt.Sprintf(`SELECT value FROM %s WHERE key = ? LIMIT 1;`, table)
	var value string
	if err := s.db.QueryRow(q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoRows
		}
		return "", fmt.Errorf("get %s %q: %w", table, key, err)
	}
	return value, nil
}

func (s *Store) deleteKV(table string, keys ...string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE key = ?;`, table)
	for _, key := range keys {
		if _, err := s.db.Exec(q, key); err != nil {
			return fmt.Errorf("delete %s %q: %w", table, key, err)
		}
	}
	return nil
}
