package core

import (
	"context"
	"fmt"

	"staffportal/pkg/domain"
)

// NewAssignedStaffRule returns the default in-transaction rule requiring that
// every assigned complaint references an existing, active staff user.
func NewAssignedStaffRule() domain.Rule {
	return assignedStaffRule{}
}

type assignedStaffRule struct{}

func (assignedStaffRule) Name() string { return "assigned_staff_active" }

func (assignedStaffRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, complaint := range view.ListComplaints() {
		if !complaint.Assigned() {
			continue
		}
		staff, ok := view.FindStaff(*complaint.AssignedStaffID)
		if !ok {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "assigned_staff_active",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("complaint %s assigned to unknown staff %s", complaint.ID, *complaint.AssignedStaffID),
				Entity:   domain.EntityComplaint,
				EntityID: complaint.ID,
			})
			continue
		}
		if !staff.Active {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "assigned_staff_active",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("complaint %s assigned to inactive staff %s (%s)", complaint.ID, staff.Name, staff.ID),
				Entity:   domain.EntityComplaint,
				EntityID: complaint.ID,
			})
		}
	}
	return res, nil
}
