package domain

// Capability is a named permission derived from a staff role. View logic asks
// for capabilities, never for role literals.
type Capability string

// Elevated capabilities gating portal actions.
const (
	// CapAssignComplaints permits assigning staff to complaints.
	CapAssignComplaints Capability = "assign_complaints"
	// CapManageStaff permits creating, editing, and deactivating staff users.
	CapManageStaff Capability = "manage_staff"
	// CapManageSettings permits editing building settings and the logo.
	CapManageSettings Capability = "manage_settings"
)

// DefaultCapabilities is the fixed role-to-capability mapping: admins hold
// every capability, supervisors assign complaints and manage staff,
// technicians hold no elevated capabilities.
func DefaultCapabilities() map[StaffRole][]Capability {
	return map[StaffRole][]Capability{
		RoleAdmin:      {CapAssignComplaints, CapManageStaff, CapManageSettings},
		RoleSupervisor: {CapAssignComplaints, CapManageStaff},
		RoleTechnician: {},
	}
}

// RoleHasCapability reports whether role grants cap under the supplied
// mapping. A nil mapping falls back to DefaultCapabilities.
func RoleHasCapability(caps map[StaffRole][]Capability, role StaffRole, cap Capability) bool {
	if caps == nil {
		caps = DefaultCapabilities()
	}
	for _, granted := range caps[role] {
		if granted == cap {
			return true
		}
	}
	return false
}

// Route identifies a navigable portal section.
type Route string

// Portal routes subject to navigation guards.
const (
	RouteDashboard  Route = "dashboard"
	RouteComplaints Route = "complaints"
	RouteTenants    Route = "tenants"
	RouteStaff      Route = "staff"
	RouteSettings   Route = "settings"
)

// RouteRoles returns the roles allowed on each route. Dashboard, complaints,
// and tenants are open to any authenticated identity; staff is restricted to
// admins and supervisors; settings to admins only.
func RouteRoles() map[Route][]StaffRole {
	return map[Route][]StaffRole{
		RouteDashboard:  {RoleAdmin, RoleSupervisor, RoleTechnician},
		RouteComplaints: {RoleAdmin, RoleSupervisor, RoleTechnician},
		RouteTenants:    {RoleAdmin, RoleSupervisor, RoleTechnician},
		RouteStaff:      {RoleAdmin, RoleSupervisor},
		RouteSettings:   {RoleAdmin},
	}
}

// RoleCanAccess reports whether role may navigate to route.
func RoleCanAccess(route Route, role StaffRole) bool {
	for _, allowed := range RouteRoles()[route] {
		if allowed == role {
			return true
		}
	}
	return false
}
