package portal

import (
	"context"

	"staffportal/internal/async"
	"staffportal/pkg/domain"
)

// Tenants returns all tenants, optionally narrowed by a free-text query over
// name, email, apartment, and phone.
func (p *Portal) Tenants(ctx context.Context, query string) *async.Deferred[[]domain.Tenant] {
	return runList(p, ctx, func(context.Context) ([]domain.Tenant, error) {
		return p.svc.SearchTenants(query), nil
	})
}

// Tenant returns a single tenant by ID.
func (p *Portal) Tenant(ctx context.Context, id string) *async.Deferred[domain.Tenant] {
	return runGet(p, ctx, func(context.Context) (domain.Tenant, error) {
		return p.svc.GetTenant(id)
	})
}

// CreateTenant registers a new tenant.
func (p *Portal) CreateTenant(ctx context.Context, tenant domain.Tenant) *async.Deferred[domain.Tenant] {
	return runWrite(p, ctx, "", "create_tenant", "Tenant created",
		func(ctx context.Context) (domain.Tenant, domain.Result, error) {
			return p.svc.CreateTenant(ctx, tenant)
		})
}

// UpdateTenant edits an existing tenant.
func (p *Portal) UpdateTenant(ctx context.Context, id string, mutator func(*domain.Tenant) error) *async.Deferred[domain.Tenant] {
	return runWrite(p, ctx, "", "update_tenant", "Tenant updated",
		func(ctx context.Context) (domain.Tenant, domain.Result, error) {
			return p.svc.UpdateTenant(ctx, id, mutator)
		})
}

// DeleteTenant removes a tenant record.
func (p *Portal) DeleteTenant(ctx context.Context, id string) *async.Deferred[struct{}] {
	return runWrite(p, ctx, "", "delete_tenant", "Tenant deleted",
		func(ctx context.Context) (struct{}, domain.Result, error) {
			res, err := p.svc.DeleteTenant(ctx, id)
			return struct{}{}, res, err
		})
}

// DeactivateTenant marks a tenant inactive, freeing their apartment.
func (p *Portal) DeactivateTenant(ctx context.Context, id string) *async.Deferred[domain.Tenant] {
	return runWrite(p, ctx, "", "deactivate_tenant", "Tenant deactivated",
		func(ctx context.Context) (domain.Tenant, domain.Result, error) {
			return p.svc.DeactivateTenant(ctx, id)
		})
}

// ActivateTenant marks a tenant active again, re-checking occupancy.
func (p *Portal) ActivateTenant(ctx context.Context, id string) *async.Deferred[domain.Tenant] {
	return runWrite(p, ctx, "", "activate_tenant", "Tenant activated",
		func(ctx context.Context) (domain.Tenant, domain.Result, error) {
			return p.svc.ActivateTenant(ctx, id)
		})
}
