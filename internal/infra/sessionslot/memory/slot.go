// Package memory implements an in-process session slot, the default backend.
package memory

import (
	"context"
	"sync"

	"staffportal/internal/session/core"
)

// Slot holds at most one identity in process memory.
type Slot struct {
	mu  sync.RWMutex
	id  core.Identity
	set bool
}

// New returns an empty in-memory slot.
func New() *Slot { return &Slot{} }

// Driver returns the slot driver identifier.
func (s *Slot) Driver() core.Driver { return core.DriverMemory }

// Load returns the stored identity, if any.
func (s *Slot) Load(_ context.Context) (core.Identity, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.set, nil
}

// Save replaces the stored identity.
func (s *Slot) Save(_ context.Context, id core.Identity) error {
	s.mu.Lock()
	s.id = id
	s.set = true
	s.mu.Unlock()
	return nil
}

// Clear empties the slot.
func (s *Slot) Clear(_ context.Context) error {
	s.mu.Lock()
	s.id = core.Identity{}
	s.set = false
	s.mu.Unlock()
	return nil
}
