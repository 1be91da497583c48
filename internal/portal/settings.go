package portal

import (
	"context"
	"io"

	"staffportal/internal/async"
	"staffportal/pkg/domain"
)

// Settings returns the building settings singleton.
func (p *Portal) Settings(ctx context.Context) *async.Deferred[domain.BuildingSettings] {
	return runGet(p, ctx, func(context.Context) (domain.BuildingSettings, error) {
		return p.svc.GetSettings()
	})
}

// UpdateSettings edits the building settings, stamping the signed-in user as
// the updater. Requires the manage-settings capability.
func (p *Portal) UpdateSettings(ctx context.Context, mutator func(*domain.BuildingSettings) error) *async.Deferred[domain.BuildingSettings] {
	id, ok := p.sessions.Current()
	if !ok {
		return async.Resolved(domain.BuildingSettings{}, domain.AuthError{Reason: "not signed in"})
	}
	return runWrite(p, ctx, domain.CapManageSettings, "update_settings", "Settings saved",
		func(ctx context.Context) (domain.BuildingSettings, domain.Result, error) {
			return p.svc.UpdateSettings(ctx, id.Name, mutator)
		})
}

// UploadLogo stores the logo bytes and records the new key on the settings
// record. Requires the manage-settings capability; runs under the upload
// latency class.
func (p *Portal) UploadLogo(ctx context.Context, filename string, r io.Reader) *async.Deferred[domain.BuildingSettings] {
	id, ok := p.sessions.Current()
	if !ok {
		return async.Resolved(domain.BuildingSettings{}, domain.AuthError{Reason: "not signed in"})
	}
	if err := p.requireCap(domain.CapManageSettings); err != nil {
		return async.Resolved(domain.BuildingSettings{}, err)
	}
	return async.Run(ctx, p.delays.Upload, func(ctx context.Context) (domain.BuildingSettings, error) {
		key, err := p.svc.UploadLogo(ctx, filename, r)
		if err != nil {
			p.outcome("upload_logo", "Logo uploaded", domain.Result{}, err)
			return domain.BuildingSettings{}, err
		}
		updated, res, err := p.svc.UpdateSettings(ctx, id.Name, func(cfg *domain.BuildingSettings) error {
			cfg.LogoKey = &key
			return nil
		})
		p.outcome("upload_logo", "Logo uploaded", res, err)
		return updated, err
	})
}

// LogoURL resolves a browsable URL for the stored logo. Backends without URL
// support return an empty string.
func (p *Portal) LogoURL(ctx context.Context, key string) *async.Deferred[string] {
	return runGet(p, ctx, func(ctx context.Context) (string, error) {
		return p.svc.LogoURL(ctx, key)
	})
}
