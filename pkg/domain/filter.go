package domain

import "strings"

// Filtering is pure: each criterion is optional, absent criteria match all,
// multi-valued criteria match by set membership, and all criteria on a single
// call combine with logical AND. Input order is preserved; callers sort or
// paginate over the result themselves.

// ComplaintFilter holds optional complaint list criteria.
type ComplaintFilter struct {
	Statuses        []ComplaintStatus
	Priorities      []ComplaintPriority
	Categories      []ComplaintCategory
	AssignedStaffID *string
	Unassigned      bool
}

// TenantFilter holds optional tenant list criteria.
type TenantFilter struct {
	Query      string
	ActiveOnly bool
}

// StaffFilter holds optional staff list criteria.
type StaffFilter struct {
	Roles  []StaffRole
	Active *bool
	Query  string
}

// FilterComplaints returns the complaints matching every set criterion.
func FilterComplaints(records []Complaint, f ComplaintFilter) []Complaint {
	out := make([]Complaint, 0, len(records))
	for _, c := range records {
		if len(f.Statuses) > 0 && !containsValue(f.Statuses, c.Status) {
			continue
		}
		if len(f.Priorities) > 0 && !containsValue(f.Priorities, c.Priority) {
			continue
		}
		if len(f.Categories) > 0 && !containsValue(f.Categories, c.Category) {
			continue
		}
		if f.AssignedStaffID != nil {
			if c.AssignedStaffID == nil || *c.AssignedStaffID != *f.AssignedStaffID {
				continue
			}
		}
		if f.Unassigned && c.Assigned() {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FilterTenants returns the tenants matching the free-text query and active
// criterion. The query matches case-insensitively by substring against name,
// email, apartment number, and phone.
func FilterTenants(records []Tenant, f TenantFilter) []Tenant {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Tenant, 0, len(records))
	for _, t := range records {
		if f.ActiveOnly && !t.Active {
			continue
		}
		if q != "" && !matchesQuery(q, t.Name, t.Email, t.ApartmentNo, t.Phone) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterStaff returns the staff users matching every set criterion. The query
// matches case-insensitively by substring against name, email, role, and phone.
func FilterStaff(records []StaffUser, f StaffFilter) []StaffUser {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]StaffUser, 0, len(records))
	for _, s := range records {
		if len(f.Roles) > 0 && !containsValue(f.Roles, s.Role) {
			continue
		}
		if f.Active != nil && s.Active != *f.Active {
			continue
		}
		if q != "" && !matchesQuery(q, s.Name, s.Email, string(s.Role), s.Phone) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsValue[T comparable](set []T, v T) bool {
	for _, candidate := range set {
		if candidate == v {
			return true
		}
	}
	return false
}

func matchesQuery(lowered string, fields ...string) bool {
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	return false
}
