package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Diagnostic keys written by the session layer.
const (
	DiagLastAuthError    = "auth_last_error"
	DiagLastAuthResponse = "auth_last_response"
)

// PutDiagnostic stores a best-effort debugging artifact. Failures are
// returned but callers are expected to ignore them.
func (s *Store) PutDiagnostic(key, value string) error {
	const q = `
INSERT INTO diagnostics (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;
`
	if _, err := s.db.Exec(q, key, value, time.Now().UnixMicro()); err != nil {
		return fmt.Errorf("put diagnostic %q: %w", key, err)
	}
	return nil
}

// GetDiagnostic returns a stored artifact and when it was written.
func (s *Store) GetDiagnostic(key string) (string, time.Time, error) {
	const q = `SELECT value, updated_at FROM diagnostics WHERE key = ? LIMIT 1;`
	var (
		value string
		at    int64
	)
	if err := s.db.QueryRow(q, key).Scan(&value, &at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, ErrNoRows
		}
		return "", time.Time{}, fmt.Errorf("get diagnostic %q: %w", key, err)
	}
	return value, time.UnixMicro(at), nil
}

func (s *Store) ClearDiagnostics() error {
	if _, err := s.db.Exec(`DELETE FROM diagnostics;`); err != nil {
		return fmt.Errorf("clear diagnostics: %w", err)
	}
	return nil
}
