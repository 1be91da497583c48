package domain

import "testing"

func TestDefaultCapabilitiesByRole(t *testing.T) {
	cases := []struct {
		role StaffRole
		cap  Capability
		want bool
	}{
		{RoleAdmin, CapAssignComplaints, true},
		{RoleAdmin, CapManageStaff, true},
		{RoleAdmin, CapManageSettings, true},
		{RoleSupervisor, CapAssignComplaints, true},
		{RoleSupervisor, CapManageStaff, true},
		{RoleSupervisor, CapManageSettings, false},
		{RoleTechnician, CapAssignComplaints, false},
		{RoleTechnician, CapManageStaff, false},
		{RoleTechnician, CapManageSettings, false},
	}
	for _, tc := range cases {
		if got := RoleHasCapability(nil, tc.role, tc.cap); got != tc.want {
			t.Errorf("RoleHasCapability(%s, %s) = %v, want %v", tc.role, tc.cap, got, tc.want)
		}
	}
}

func TestRoleHasCapabilityCustomMapping(t *testing.T) {
	caps := map[StaffRole][]Capability{
		RoleTechnician: {CapAssignComplaints},
	}
	if !RoleHasCapability(caps, RoleTechnician, CapAssignComplaints) {
		t.Fatal("custom mapping should grant technicians assignment")
	}
	if RoleHasCapability(caps, RoleAdmin, CapManageStaff) {
		t.Fatal("custom mapping should not fall back to defaults for other roles")
	}
}

func TestRouteAccessByRole(t *testing.T) {
	openToAll := []Route{RouteDashboard, RouteComplaints, RouteTenants}
	for _, route := range openToAll {
		for _, role := range []StaffRole{RoleAdmin, RoleSupervisor, RoleTechnician} {
			if !RoleCanAccess(route, role) {
				t.Errorf("%s should reach %s", role, route)
			}
		}
	}

	if !RoleCanAccess(RouteStaff, RoleSupervisor) {
		t.Error("supervisor should reach staff route")
	}
	if RoleCanAccess(RouteStaff, RoleTechnician) {
		t.Error("technician should not reach staff route")
	}
	if RoleCanAccess(RouteSettings, RoleSupervisor) {
		t.Error("supervisor should not reach settings route")
	}
	if !RoleCanAccess(RouteSettings, RoleAdmin) {
		t.Error("admin should reach settings route")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []StaffRole{RoleAdmin, RoleSupervisor, RoleTechnician} {
		if !ValidRole(role) {
			t.Errorf("%s should be valid", role)
		}
	}
	if ValidRole(StaffRole("Janitor")) {
		t.Error("unknown role should be invalid")
	}
}
