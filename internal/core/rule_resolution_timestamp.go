package core

import (
	"context"
	"fmt"

	"staffportal/pkg/domain"
)

// NewResolutionTimestampRule returns a non-blocking rule auditing resolution
// timestamps. A complaint that regressed out of Resolved keeps its ResolvedAt
// (the portal never clears it); the rule logs those so the retained timestamp
// stays visible rather than silently surprising downstream reports.
func NewResolutionTimestampRule() domain.Rule {
	return resolutionTimestampRule{}
}

type resolutionTimestampRule struct{}

func (resolutionTimestampRule) Name() string { return "resolution_timestamp" }

func (resolutionTimestampRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, complaint := range view.ListComplaints() {
		switch {
		case complaint.Status == domain.StatusResolved && complaint.ResolvedAt == nil:
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "resolution_timestamp",
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("complaint %s is resolved without a resolution timestamp", complaint.ID),
				Entity:   domain.EntityComplaint,
				EntityID: complaint.ID,
			})
		case complaint.Status != domain.StatusResolved && complaint.Status != domain.StatusClosed && complaint.ResolvedAt != nil:
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "resolution_timestamp",
				Severity: domain.SeverityLog,
				Message:  fmt.Sprintf("complaint %s regressed from resolved; resolution timestamp retained", complaint.ID),
				Entity:   domain.EntityComplaint,
				EntityID: complaint.ID,
			})
		}
	}
	return res, nil
}

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewAssignedStaffRule())
	engine.Register(NewResolutionTimestampRule())
	return engine
}
