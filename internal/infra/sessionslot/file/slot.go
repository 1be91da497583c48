// Package file implements a session slot persisted as a JSON file. Writes go
// through a temp file and rename, so a crash never leaves a partial payload.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"staffportal/internal/session/core"
)

// Slot stores the identity at a fixed path on disk.
type Slot struct {
	mu   sync.Mutex
	path string
}

// New returns a file-backed slot at path, creating parent directories.
func New(path string) (*Slot, error) {
	if path == "" {
		path = filepath.Join(".", "session.json")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	return &Slot{path: path}, nil
}

// Driver returns the slot driver identifier.
func (s *Slot) Driver() core.Driver { return core.DriverFile }

// Path returns the configured file path.
func (s *Slot) Path() string { return s.path }

// Load reads and decodes the identity file. A missing file means no session.
func (s *Slot) Load(_ context.Context) (core.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.Identity{}, false, nil
	}
	if err != nil {
		return core.Identity{}, false, err
	}
	var id core.Identity
	if err := json.Unmarshal(b, &id); err != nil {
		return core.Identity{}, false, fmt.Errorf("%w: %v", core.ErrCorrupt, err)
	}
	return id, true, nil
}

// Save writes the identity atomically.
func (s *Slot) Save(_ context.Context, id core.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Clear removes the identity file. A missing file is not an error.
func (s *Slot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
