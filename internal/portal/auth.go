package portal

import (
	"context"

	"staffportal/internal/async"
	"staffportal/internal/session"
	"staffportal/pkg/domain"
)

// Login verifies the credentials and opens a session. Runs under the write
// latency class like the other mutations.
func (p *Portal) Login(ctx context.Context, email, passphrase string) *async.Deferred[session.Identity] {
	return async.Run(ctx, p.delays.Write, func(ctx context.Context) (session.Identity, error) {
		id, err := p.sessions.Login(ctx, email, passphrase)
		if err != nil {
			p.notifyError("Sign in failed", err)
			return session.Identity{}, err
		}
		p.notifySuccess("Welcome back, " + id.Name)
		return id, nil
	})
}

// Logout closes the session immediately.
func (p *Portal) Logout(ctx context.Context) error {
	return p.sessions.Logout(ctx)
}

// CurrentUser returns the signed-in identity, if any.
func (p *Portal) CurrentUser() (session.Identity, bool) {
	return p.sessions.Current()
}

// CanAccessRoute reports whether the signed-in user may open the route.
func (p *Portal) CanAccessRoute(route domain.Route) bool {
	return p.sessions.CanAccessRoute(route)
}

// Can reports whether the signed-in user's role grants the capability.
func (p *Portal) Can(cap domain.Capability) bool {
	return p.sessions.Can(cap)
}
