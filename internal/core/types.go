package core

import "staffportal/pkg/domain"

type (
	EntityType         = domain.EntityType
	ComplaintStatus    = domain.ComplaintStatus
	ComplaintPriority  = domain.ComplaintPriority
	ComplaintCategory  = domain.ComplaintCategory
	StaffRole          = domain.StaffRole
	Severity           = domain.Severity
	Base               = domain.Base
	Complaint          = domain.Complaint
	ComplaintNote      = domain.ComplaintNote
	Tenant             = domain.Tenant
	StaffUser          = domain.StaffUser
	BuildingSettings   = domain.BuildingSettings
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RuleViolationError = domain.RuleViolationError
	Rule               = domain.Rule
	RulesEngine        = domain.RulesEngine
)

const (
	EntityComplaint     = domain.EntityComplaint
	EntityComplaintNote = domain.EntityComplaintNote
	EntityTenant        = domain.EntityTenant
	EntityStaffUser     = domain.EntityStaffUser
	EntitySettings      = domain.EntitySettings
)

const (
	StatusOpen       = domain.StatusOpen
	StatusInProgress = domain.StatusInProgress
	StatusResolved   = domain.StatusResolved
	StatusClosed     = domain.StatusClosed
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)
