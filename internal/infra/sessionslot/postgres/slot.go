// Package postgres implements a session slot persisted to Postgres. The
// identity is stored as a JSONB payload in a single keyed row.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"staffportal/internal/session/core"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const defaultDSN = "postgres://localhost/staffportal?sslmode=disable"

// Slot stores the identity in a Postgres table keyed by the session storage
// key.
type Slot struct {
	db *sql.DB
}

// New opens a Postgres-backed slot using the provided DSN (falls back to a
// local default) and ensures the session table.
func New(ctx context.Context, dsn string) (*Slot, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS session (
		slot TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create session table: %w", err)
	}
	return &Slot{db: db}, nil
}

// Driver returns the slot driver identifier.
func (s *Slot) Driver() core.Driver { return core.DriverPostgres }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Slot) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Slot) Close() error { return s.db.Close() }

// Load reads and decodes the stored identity row.
func (s *Slot) Load(ctx context.Context) (core.Identity, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM session WHERE slot = $1`, core.StorageKey,
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
		`INSERT INTO session(slot, payload) VALUES($1, $2)
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
		`DELETE FROM session WHERE slot = $1`, core.StorageKey,
	); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
