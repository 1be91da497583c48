package session

import (
	"context"
	"fmt"
	"os"

	fileslot "staffportal/internal/infra/sessionslot/file"
	memoryslot "staffportal/internal/infra/sessionslot/memory"
	postgresslot "staffportal/internal/infra/sessionslot/postgres"
	sqliteslot "staffportal/internal/infra/sessionslot/sqlite"
	"staffportal/internal/session/core"
)

type (
	// Identity is the serialized snapshot of the signed-in staff user.
	Identity = core.Identity
	// Slot is a durable single-identity store.
	Slot = core.Slot
	// Driver identifies a slot backend driver.
	Driver = core.Driver
)

const (
	// DriverMemory keeps the identity in process memory (default).
	DriverMemory = core.DriverMemory
	// DriverFile stores the identity as a JSON file.
	DriverFile = core.DriverFile
	// DriverSQLite stores the identity in SQLite.
	DriverSQLite = core.DriverSQLite
	// DriverPostgres stores the identity in Postgres.
	DriverPostgres = core.DriverPostgres
)

// StorageKey is the fixed key the identity is stored under.
const StorageKey = core.StorageKey

// ErrCorrupt indicates a stored identity payload could not be decoded.
var ErrCorrupt = core.ErrCorrupt

// NewMemorySlot returns an in-process slot.
func NewMemorySlot() Slot { return memoryslot.New() }

// NewFileSlot returns a JSON-file-backed slot at path.
func NewFileSlot(path string) (Slot, error) { return fileslot.New(path) }

// OpenSlot selects a slot implementation using environment variables.
//
//	STAFFPORTAL_SESSION_DRIVER:       memory|file|sqlite|postgres (default memory)
//	STAFFPORTAL_SESSION_FILE:         path when driver=file (default ./session.json)
//	STAFFPORTAL_SESSION_SQLITE_PATH:  path when driver=sqlite (default staffportal.db)
//	STAFFPORTAL_SESSION_POSTGRES_DSN: DSN when driver=postgres
func OpenSlot(ctx context.Context) (Slot, error) {
	driver := os.Getenv("STAFFPORTAL_SESSION_DRIVER")
	if driver == "" {
		driver = string(DriverMemory)
	}
	switch Driver(driver) {
	case DriverMemory:
		return memoryslot.New(), nil
	case DriverFile:
		return fileslot.New(os.Getenv("STAFFPORTAL_SESSION_FILE"))
	case DriverSQLite:
		return sqliteslot.New(os.Getenv("STAFFPORTAL_SESSION_SQLITE_PATH"))
	case DriverPostgres:
		return postgresslot.New(ctx, os.Getenv("STAFFPORTAL_SESSION_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown session driver %s", driver)
	}
}
