package domain

import "testing"

func sampleComplaints() []Complaint {
	assigned := "staff-3"
	name := "Mike Technician"
	return []Complaint{
		{Base: Base{ID: "c1"}, Status: StatusOpen, Priority: PriorityHigh, Category: CategoryAC},
		{Base: Base{ID: "c2"}, Status: StatusInProgress, Priority: PriorityMedium, Category: CategoryPlumbing, AssignedStaffID: &assigned, AssignedStaffName: &name},
		{Base: Base{ID: "c3"}, Status: StatusResolved, Priority: PriorityLow, Category: CategoryElectrical, AssignedStaffID: &assigned, AssignedStaffName: &name},
		{Base: Base{ID: "c4"}, Status: StatusOpen, Priority: PriorityMedium, Category: CategoryMaintenance},
	}
}

func ids(cs []Complaint) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestFilterComplaintsEmptyFilterMatchesAll(t *testing.T) {
	got := FilterComplaints(sampleComplaints(), ComplaintFilter{})
	if len(got) != 4 {
		t.Fatalf("expected all 4 complaints, got %d", len(got))
	}
	want := []string{"c1", "c2", "c3", "c4"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("order not preserved: got %v", ids(got))
		}
	}
}

func TestFilterComplaintsSetMembership(t *testing.T) {
	got := FilterComplaints(sampleComplaints(), ComplaintFilter{
		Statuses: []ComplaintStatus{StatusOpen, StatusResolved},
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %v", ids(got))
	}
}

func TestFilterComplaintsCriteriaCombineWithAND(t *testing.T) {
	got := FilterComplaints(sampleComplaints(), ComplaintFilter{
		Statuses:   []ComplaintStatus{StatusOpen},
		Priorities: []ComplaintPriority{PriorityMedium},
	})
	if len(got) != 1 || got[0].ID != "c4" {
		t.Fatalf("expected only c4, got %v", ids(got))
	}
}

func TestFilterComplaintsAssignment(t *testing.T) {
	staffID := "staff-3"
	assigned := FilterComplaints(sampleComplaints(), ComplaintFilter{AssignedStaffID: &staffID})
	if len(assigned) != 2 {
		t.Fatalf("expected 2 assigned to staff-3, got %v", ids(assigned))
	}

	unassigned := FilterComplaints(sampleComplaints(), ComplaintFilter{Unassigned: true})
	if len(unassigned) != 2 || unassigned[0].ID != "c1" || unassigned[1].ID != "c4" {
		t.Fatalf("expected c1,c4 unassigned, got %v", ids(unassigned))
	}

	other := "staff-9"
	if got := FilterComplaints(sampleComplaints(), ComplaintFilter{AssignedStaffID: &other}); len(got) != 0 {
		t.Fatalf("expected no matches for unknown staff, got %v", ids(got))
	}
}

func TestFilterTenantsQueryIsCaseInsensitiveSubstring(t *testing.T) {
	tenants := []Tenant{
		{Base: Base{ID: "t1"}, Name: "Alice Johnson", Email: "alice.johnson@email.com", ApartmentNo: "101", Phone: "+1-555-0201", Active: true},
		{Base: Base{ID: "t2"}, Name: "Bob Smith", Email: "bob.smith@email.com", ApartmentNo: "205", Phone: "+1-555-0202", Active: false},
	}

	if got := FilterTenants(tenants, TenantFilter{Query: "ALICE"}); len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("name query failed: %+v", got)
	}
	if got := FilterTenants(tenants, TenantFilter{Query: "205"}); len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("apartment query failed: %+v", got)
	}
	if got := FilterTenants(tenants, TenantFilter{Query: "smith", ActiveOnly: true}); len(got) != 0 {
		t.Fatalf("active-only should exclude t2, got %+v", got)
	}
	if got := FilterTenants(tenants, TenantFilter{Query: "   "}); len(got) != 2 {
		t.Fatalf("blank query should match all, got %d", len(got))
	}
}

func TestFilterStaffMatchesRoleText(t *testing.T) {
	staff := []StaffUser{
		{ID: "s1", Name: "John Admin", Email: "admin@building.com", Role: RoleAdmin, Active: true},
		{ID: "s2", Name: "Mike Technician", Email: "tech@building.com", Role: RoleTechnician, Active: true},
		{ID: "s3", Name: "Sarah Tech", Email: "tech2@building.com", Role: RoleTechnician, Active: false},
	}

	if got := FilterStaff(staff, StaffFilter{Query: "technician"}); len(got) != 2 {
		t.Fatalf("role text query: expected 2, got %d", len(got))
	}
	active := true
	got := FilterStaff(staff, StaffFilter{Roles: []StaffRole{RoleTechnician}, Active: &active})
	if len(got) != 1 || got[0].ID != "s2" {
		t.Fatalf("expected only s2, got %+v", got)
	}
}
