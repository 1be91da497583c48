// Package blob re-exports the blob storage abstractions and selects a backend
// from the environment.
package blob

import (
	"context"
	"fmt"
	"os"

	"staffportal/internal/blob/core"
	fsstore "staffportal/internal/infra/blob/fs"
	memorystore "staffportal/internal/infra/blob/memory"
	s3store "staffportal/internal/infra/blob/s3"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// PutOptions configures a blob write.
	PutOptions = core.PutOptions
	// SignedURLOptions configures URL pre-signing.
	SignedURLOptions = core.SignedURLOptions
	// Info describes stored blob metadata.
	Info = core.Info
	// Store is the interface for blob storage backends.
	Store = core.Store
	// S3Config holds explicit S3 construction parameters.
	S3Config = s3store.Config
)

const (
	// DriverMemory is the in-process driver (default).
	DriverMemory = core.DriverMemory
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
)

// ErrUnsupported indicates an operation isn't supported by a driver.
var ErrUnsupported = core.ErrUnsupported

// ErrNotFound indicates a key has no stored blob.
var ErrNotFound = core.ErrNotFound

// NewMemory returns an in-process blob store.
func NewMemory() Store { return memorystore.New() }

// NewFilesystem returns a filesystem-backed blob store rooted at path.
func NewFilesystem(root string) (Store, error) { return fsstore.New(root) }

// NewS3 constructs an S3-backed blob store from explicit configuration.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) { return s3store.New(ctx, cfg) }

// Open selects a blob store implementation using environment variables.
//
//	STAFFPORTAL_BLOB_DRIVER:  memory|fs|s3 (default memory)
//	STAFFPORTAL_BLOB_FS_ROOT: directory root when driver=fs (default ./portaldata)
//	(S3 variables documented in the s3 package)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("STAFFPORTAL_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverMemory)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("STAFFPORTAL_BLOB_FS_ROOT"))
	case DriverS3:
		return s3store.OpenFromEnv(ctx)
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
