// Package session tracks the signed-in staff user and answers role,
// capability, and route questions about them. The current identity is
// mirrored into a durable slot so a restart resumes the session.
package session

import (
	"context"
	"sync"

	"staffportal/pkg/domain"

	"go.uber.org/zap"
)

// DefaultPassphrase is the shared demo passphrase accepted for every staff
// account. Real credential checking is deliberately out of scope.
const DefaultPassphrase = "password123"

// Directory resolves staff accounts at login time.
type Directory interface {
	StaffByEmail(email string) (domain.StaffUser, bool)
}

// Manager owns the current session. All methods are safe for concurrent use.
type Manager struct {
	dir          Directory
	slot         Slot
	passphrase   string
	capabilities map[domain.StaffRole][]domain.Capability
	logger       *zap.Logger

	mu      sync.RWMutex
	current *Identity
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithPassphrase overrides the shared passphrase.
func WithPassphrase(p string) ManagerOption {
	return func(m *Manager) { m.passphrase = p }
}

// WithCapabilities overrides the role-to-capability mapping.
func WithCapabilities(caps map[domain.StaffRole][]domain.Capability) ManagerOption {
	return func(m *Manager) { m.capabilities = caps }
}

// WithLogger attaches a logger for session lifecycle events.
func WithLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager constructs a session manager and restores any identity already
// present in the slot. The restored identity is trusted as-is; it was
// validated when it was saved.
func NewManager(ctx context.Context, dir Directory, slot Slot, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		dir:        dir,
		slot:       slot,
		passphrase: DefaultPassphrase,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	id, ok, err := m.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		m.current = &id
		m.logger.Info("session restored",
			zap.String("email", id.Email),
			zap.String("role", string(id.Role)),
			zap.String("slot_driver", string(slot.Driver())))
	}
	return m, nil
}

// Login verifies the email and passphrase against the staff directory and
// opens a session. The same failure is reported for an unknown email, an
// inactive account, and a wrong passphrase.
func (m *Manager) Login(ctx context.Context, email, passphrase string) (Identity, error) {
	staff, ok := m.dir.StaffByEmail(email)
	if !ok || !staff.Active || passphrase != m.passphrase {
		m.logger.Warn("login rejected", zap.String("email", email))
		return Identity{}, domain.AuthError{Reason: "invalid email or password"}
	}
	id := Identity{ID: staff.ID, Email: staff.Email, Name: staff.Name, Role: staff.Role}
	if err := m.slot.Save(ctx, id); err != nil {
		return Identity{}, err
	}
	m.mu.Lock()
	m.current = &id
	m.mu.Unlock()
	m.logger.Info("login", zap.String("email", id.Email), zap.String("role", string(id.Role)))
	return id, nil
}

// Logout closes the session. The in-memory session ends even if clearing the
// slot fails; the error is returned so callers can surface it.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	var email string
	if m.current != nil {
		email = m.current.Email
	}
	m.current = nil
	m.mu.Unlock()
	err := m.slot.Clear(ctx)
	m.logger.Info("logout", zap.String("email", email))
	return err
}

// Current returns the signed-in identity, if any.
func (m *Manager) Current() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Identity{}, false
	}
	return *m.current, true
}

// Authenticated reports whether a session is open.
func (m *Manager) Authenticated() bool {
	_, ok := m.Current()
	return ok
}

// HasRole reports whether the signed-in user holds exactly the given role.
func (m *Manager) HasRole(role domain.StaffRole) bool {
	id, ok := m.Current()
	return ok && id.Role == role
}

// HasAnyRole reports whether the signed-in user holds one of the given roles.
func (m *Manager) HasAnyRole(roles ...domain.StaffRole) bool {
	id, ok := m.Current()
	if !ok {
		return false
	}
	for _, role := range roles {
		if id.Role == role {
			return true
		}
	}
	return false
}

// Can reports whether the signed-in user's role grants the capability.
func (m *Manager) Can(cap domain.Capability) bool {
	id, ok := m.Current()
	return ok && domain.RoleHasCapability(m.capabilities, id.Role, cap)
}

// CanAccessRoute reports whether the signed-in user may open the route.
// Every route requires a session; some additionally require specific roles.
func (m *Manager) CanAccessRoute(route domain.Route) bool {
	id, ok := m.Current()
	return ok && domain.RoleCanAccess(route, id.Role)
}
