package portal

import (
	"context"

	"staffportal/internal/async"
	"staffportal/internal/core"
	"staffportal/pkg/domain"
)

// Complaints returns complaints matching the filter, newest-first insertion
// order preserved.
func (p *Portal) Complaints(ctx context.Context, filter domain.ComplaintFilter) *async.Deferred[[]domain.Complaint] {
	return runList(p, ctx, func(context.Context) ([]domain.Complaint, error) {
		return p.svc.FilterComplaints(filter), nil
	})
}

// Complaint returns a single complaint by ID.
func (p *Portal) Complaint(ctx context.Context, id string) *async.Deferred[domain.Complaint] {
	return runGet(p, ctx, func(context.Context) (domain.Complaint, error) {
		return p.svc.GetComplaint(id)
	})
}

// CreateComplaint files a new complaint on behalf of a tenant.
func (p *Portal) CreateComplaint(ctx context.Context, complaint domain.Complaint) *async.Deferred[domain.Complaint] {
	return runWrite(p, ctx, "", "create_complaint", "Complaint created",
		func(ctx context.Context) (domain.Complaint, domain.Result, error) {
			return p.svc.CreateComplaint(ctx, complaint)
		})
}

// UpdateComplaintStatus moves a complaint through its workflow.
func (p *Portal) UpdateComplaintStatus(ctx context.Context, id string, status domain.ComplaintStatus) *async.Deferred[domain.Complaint] {
	return runWrite(p, ctx, "", "update_complaint_status", "Complaint status updated",
		func(ctx context.Context) (domain.Complaint, domain.Result, error) {
			return p.svc.UpdateComplaintStatus(ctx, id, status)
		})
}

// UpdateComplaint edits a complaint using the provided mutator.
func (p *Portal) UpdateComplaint(ctx context.Context, id string, mutator func(*domain.Complaint) error) *async.Deferred[domain.Complaint] {
	return runWrite(p, ctx, "", "update_complaint", "Complaint updated",
		func(ctx context.Context) (domain.Complaint, domain.Result, error) {
			return p.svc.UpdateComplaint(ctx, id, mutator)
		})
}

// DeleteComplaint removes a complaint.
func (p *Portal) DeleteComplaint(ctx context.Context, id string) *async.Deferred[struct{}] {
	return runWrite(p, ctx, "", "delete_complaint", "Complaint deleted",
		func(ctx context.Context) (struct{}, domain.Result, error) {
			res, err := p.svc.DeleteComplaint(ctx, id)
			return struct{}{}, res, err
		})
}

// AssignComplaint assigns a staff member to a complaint. Requires the
// assign-complaints capability.
func (p *Portal) AssignComplaint(ctx context.Context, complaintID, staffID string) *async.Deferred[domain.Complaint] {
	return runWrite(p, ctx, domain.CapAssignComplaints, "assign_complaint", "Complaint assigned",
		func(ctx context.Context) (domain.Complaint, domain.Result, error) {
			return p.svc.AssignStaff(ctx, complaintID, staffID)
		})
}

// AddComplaintNote appends an internal note authored by the signed-in user.
func (p *Portal) AddComplaintNote(ctx context.Context, complaintID, text string) *async.Deferred[domain.ComplaintNote] {
	id, ok := p.sessions.Current()
	if !ok {
		return async.Resolved(domain.ComplaintNote{}, domain.AuthError{Reason: "not signed in"})
	}
	return runWrite(p, ctx, "", "add_complaint_note", "Note added",
		func(ctx context.Context) (domain.ComplaintNote, domain.Result, error) {
			return p.svc.AddNote(ctx, complaintID, id.ID, text)
		})
}

// Dashboard returns the derived complaint aggregates.
func (p *Portal) Dashboard(ctx context.Context) *async.Deferred[core.DashboardSnapshot] {
	return runList(p, ctx, func(context.Context) (core.DashboardSnapshot, error) {
		return p.svc.Dashboard(), nil
	})
}
