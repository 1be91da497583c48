// Package sqlite implements a session slot persisted to a SQLite database.
// The identity is stored as a JSON payload in a single keyed row.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"staffportal/internal/session/core"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Slot stores the identity in a SQLite table keyed by the session storage key.
type Slot struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database at path and ensures the session table.
func New(path string) (*Slot, error) {
	if path == "" {
		path = "staffportal.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS session (
		slot TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create session table: %w", err)
	}
	return &Slot{db: db, path: path}, nil
}

// Driver returns the slot driver identifier.
func (s *Slot) Driver() core.Driver { return core.DriverSQLite }

// Path returns the configured database path.
func (s *Slot) Path() string { return s.path }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Slot) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Slot) Close() error { return s.db.Close() }

// Load reads and decodes the stored identity row.
func (s *Slot) Load(ctx context.Context) (core.Identity, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM session WHERE slot = ?`, core.StorageKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Identity{}, false, nil
	}
	if err != nil {
		return core.Identity{}, false, fmt.Errorf("select session: %w", err)
	}
	var id core.Identity
	if err := json.Unmarshal(payload, &id); err != nil {
		return core.Identity{}, false, fmt.Errorf("%w: %v", core.ErrCorrupt, err)
	}
	return id, true, nil
}

// Save upserts the identity row.
func (s *Slot) Save(ctx context.Context, id core.Identity) error {
	payload, err := json.Marshal(id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO session(slot, payload) VALUES(?, ?)
		 ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload`,
		core.StorageKey, payload,
	); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Clear deletes the identity row.
func (s *Slot) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session WHERE slot = ?`, core.StorageKey,
	); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
