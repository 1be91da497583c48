package core

import (
	"strings"

	"staffportal/pkg/domain"
)

// Compile-time checks that the store satisfies the domain contracts.
var (
	_ domain.Store       = (*MemoryStore)(nil)
	_ domain.Transaction = (*Transaction)(nil)
)

// Draft validation is deliberately shallow: required fields and enum
// membership. Anything richer (formats, cross-field rules) belongs to the
// form layer or the rules engine.

func validateComplaint(c Complaint) error {
	if strings.TrimSpace(c.TenantID) == "" {
		return domain.ValidationError{Entity: EntityComplaint, Field: "tenant_id", Reason: "is required"}
	}
	if strings.TrimSpace(c.Title) == "" {
		return domain.ValidationError{Entity: EntityComplaint, Field: "title", Reason: "is required"}
	}
	switch c.Category {
	case domain.CategoryAC, domain.CategoryPlumbing, domain.CategoryElectrical,
		domain.CategoryMaintenance, domain.CategorySecurity, domain.CategoryOther:
	default:
		return domain.ValidationError{Entity: EntityComplaint, Field: "category", Reason: "is not a known category"}
	}
	switch c.Priority {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityCritical:
	default:
		return domain.ValidationError{Entity: EntityComplaint, Field: "priority", Reason: "is not a known priority"}
	}
	switch c.Status {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
	default:
		return domain.ValidationError{Entity: EntityComplaint, Field: "status", Reason: "is not a known status"}
	}
	return nil
}

func validateTenant(t Tenant) error {
	if strings.TrimSpace(t.Name) == "" {
		return domain.ValidationError{Entity: EntityTenant, Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(t.Email) == "" {
		return domain.ValidationError{Entity: EntityTenant, Field: "email", Reason: "is required"}
	}
	if strings.TrimSpace(t.BuildingID) == "" {
		return domain.ValidationError{Entity: EntityTenant, Field: "building_id", Reason: "is required"}
	}
	if strings.TrimSpace(t.ApartmentNo) == "" {
		return domain.ValidationError{Entity: EntityTenant, Field: "apartment_no", Reason: "is required"}
	}
	if t.RentAmount < 0 {
		return domain.ValidationError{Entity: EntityTenant, Field: "rent_amount", Reason: "must not be negative"}
	}
	return nil
}

func validateStaff(st StaffUser) error {
	if strings.TrimSpace(st.Email) == "" {
		return domain.ValidationError{Entity: EntityStaffUser, Field: "email", Reason: "is required"}
	}
	if strings.TrimSpace(st.Name) == "" {
		return domain.ValidationError{Entity: EntityStaffUser, Field: "name", Reason: "is required"}
	}
	if !domain.ValidRole(st.Role) {
		return domain.ValidationError{Entity: EntityStaffUser, Field: "role", Reason: "is not a known role"}
	}
	return nil
}
