// Package core defines the identity snapshot and the durable slot interface
// used by the session layer.
package core

import (
	"context"
	"errors"

	"staffportal/pkg/domain"
)

// StorageKey is the fixed key a slot stores the identity under. Backends with
// keyed storage (sqlite, postgres) use it as the row key; single-value
// backends ignore it.
const StorageKey = "currentUser"

// Identity is the serialized snapshot of the signed-in staff user.
type Identity struct {
	ID    string           `json:"id"`
	Email string           `json:"email"`
	Name  string           `json:"name"`
	Role  domain.StaffRole `json:"role"`
}

// Driver identifies a concrete slot backend implementation.
type Driver string

const (
	// DriverMemory keeps the identity in process memory (default).
	DriverMemory Driver = "memory"
	// DriverFile stores the identity as a JSON file on disk.
	DriverFile Driver = "file"
	// DriverSQLite stores the identity in a SQLite database.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores the identity in a Postgres database.
	DriverPostgres Driver = "postgres"
)

// Slot is a durable single-identity store. A slot holds at most one identity;
// Save replaces it and Clear empties it.
type Slot interface {
	Load(ctx context.Context) (Identity, bool, error)
	Save(ctx context.Context, id Identity) error
	Clear(ctx context.Context) error
	Driver() Driver
}

// ErrCorrupt indicates the stored identity payload could not be decoded.
var ErrCorrupt = errors.New("session slot: corrupt payload")
