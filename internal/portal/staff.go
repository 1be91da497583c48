package portal

import (
	"context"

	"staffportal/internal/async"
	"staffportal/pkg/domain"
)

// Staff returns staff users matching the filter.
func (p *Portal) Staff(ctx context.Context, filter domain.StaffFilter) *async.Deferred[[]domain.StaffUser] {
	return runList(p, ctx, func(context.Context) ([]domain.StaffUser, error) {
		return p.svc.FilterStaff(filter), nil
	})
}

// StaffUser returns a single staff user by ID.
func (p *Portal) StaffUser(ctx context.Context, id string) *async.Deferred[domain.StaffUser] {
	return runGet(p, ctx, func(context.Context) (domain.StaffUser, error) {
		return p.svc.GetStaff(id)
	})
}

// AssignmentCandidates returns the active technicians offered by the
// complaint assignment picker.
func (p *Portal) AssignmentCandidates(ctx context.Context) *async.Deferred[[]domain.StaffUser] {
	return runList(p, ctx, func(context.Context) ([]domain.StaffUser, error) {
		return p.svc.ActiveTechnicians(), nil
	})
}

// CreateStaff registers a staff account. Requires the manage-staff
// capability.
func (p *Portal) CreateStaff(ctx context.Context, staff domain.StaffUser) *async.Deferred[domain.StaffUser] {
	return runWrite(p, ctx, domain.CapManageStaff, "create_staff", "Staff member created",
		func(ctx context.Context) (domain.StaffUser, domain.Result, error) {
			return p.svc.CreateStaff(ctx, staff)
		})
}

// UpdateStaff edits a staff account. Requires the manage-staff capability.
func (p *Portal) UpdateStaff(ctx context.Context, id string, mutator func(*domain.StaffUser) error) *async.Deferred[domain.StaffUser] {
	return runWrite(p, ctx, domain.CapManageStaff, "update_staff", "Staff member updated",
		func(ctx context.Context) (domain.StaffUser, domain.Result, error) {
			return p.svc.UpdateStaff(ctx, id, mutator)
		})
}

// DeleteStaff removes a staff account. Requires the manage-staff capability.
// Complaints still assigned to the account block the change.
func (p *Portal) DeleteStaff(ctx context.Context, id string) *async.Deferred[struct{}] {
	return runWrite(p, ctx, domain.CapManageStaff, "delete_staff", "Staff member deleted",
		func(ctx context.Context) (struct{}, domain.Result, error) {
			res, err := p.svc.DeleteStaff(ctx, id)
			return struct{}{}, res, err
		})
}

// DeactivateStaff disables a staff account. Requires the manage-staff
// capability. Complaints still assigned to the account block the change.
func (p *Portal) DeactivateStaff(ctx context.Context, id string) *async.Deferred[domain.StaffUser] {
	return runWrite(p, ctx, domain.CapManageStaff, "deactivate_staff", "Staff member deactivated",
		func(ctx context.Context) (domain.StaffUser, domain.Result, error) {
			return p.svc.DeactivateStaff(ctx, id)
		})
}

// ActivateStaff re-enables a staff account. Requires the manage-staff
// capability.
func (p *Portal) ActivateStaff(ctx context.Context, id string) *async.Deferred[domain.StaffUser] {
	return runWrite(p, ctx, domain.CapManageStaff, "activate_staff", "Staff member activated",
		func(ctx context.Context) (domain.StaffUser, domain.Result, error) {
			return p.svc.ActivateStaff(ctx, id)
		})
}
