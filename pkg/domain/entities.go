// Package domain defines the core entities, value types, error taxonomy, and
// rule evaluation primitives used by staffportal.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and error values.
const (
	// EntityComplaint identifies a maintenance complaint record.
	EntityComplaint EntityType = "complaint"
	// EntityComplaintNote identifies a note appended to a complaint.
	EntityComplaintNote EntityType = "complaint_note"
	// EntityTenant identifies a tenant record.
	EntityTenant EntityType = "tenant"
	// EntityStaffUser identifies a staff user record.
	EntityStaffUser EntityType = "staff_user"
	// EntitySettings identifies the singleton building settings record.
	EntitySettings EntityType = "building_settings"
)

// ComplaintStatus enumerates the complaint workflow states.
type ComplaintStatus string

// Canonical complaint statuses.
const (
	StatusOpen       ComplaintStatus = "Open"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
	StatusClosed     ComplaintStatus = "Closed"
)

// ComplaintPriority enumerates complaint urgency levels.
type ComplaintPriority string

// Canonical complaint priorities.
const (
	PriorityLow      ComplaintPriority = "Low"
	PriorityMedium   ComplaintPriority = "Medium"
	PriorityHigh     ComplaintPriority = "High"
	PriorityCritical ComplaintPriority = "Critical"
)

// ComplaintCategory enumerates the maintenance categories a complaint can fall under.
type ComplaintCategory string

// Canonical complaint categories.
const (
	CategoryAC          ComplaintCategory = "AC"
	CategoryPlumbing    ComplaintCategory = "Plumbing"
	CategoryElectrical  ComplaintCategory = "Electrical"
	CategoryMaintenance ComplaintCategory = "Maintenance"
	CategorySecurity    ComplaintCategory = "Security"
	CategoryOther       ComplaintCategory = "Other"
)

// StaffRole enumerates staff access roles.
type StaffRole string

// Canonical staff roles, in descending order of privilege.
const (
	RoleAdmin      StaffRole = "Admin"
	RoleSupervisor StaffRole = "Supervisor"
	RoleTechnician StaffRole = "Technician"
)

// ValidRole reports whether r is one of the canonical staff roles.
func ValidRole(r StaffRole) bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleTechnician:
		return true
	}
	return false
}

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Complaint represents a maintenance complaint raised by a tenant.
//
// TenantName and ApartmentNo are denormalized copies of the referenced
// tenant's fields, and AssignedStaffName of the assigned staff member's name.
// The copies are refreshed transactionally whenever the referenced record
// changes; readers must not treat them as live joins.
type Complaint struct {
	Base
	TenantID          string            `json:"tenant_id"`
	TenantName        string            `json:"tenant_name"`
	ApartmentNo       string            `json:"apartment_no"`
	Category          ComplaintCategory `json:"category"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Priority          ComplaintPriority `json:"priority"`
	Status            ComplaintStatus   `json:"status"`
	AssignedStaffID   *string           `json:"assigned_staff_id,omitempty"`
	AssignedStaffName *string           `json:"assigned_staff_name,omitempty"`
	ResolvedAt        *time.Time        `json:"resolved_at,omitempty"`
	Images            []string          `json:"images"`
	Notes             []ComplaintNote   `json:"internal_notes"`
}

// Assigned reports whether the complaint has an assigned staff member.
func (c Complaint) Assigned() bool {
	return c.AssignedStaffID != nil && *c.AssignedStaffID != ""
}

// ComplaintNote is an internal staff note appended to a complaint.
// Notes are immutable once created; the sequence is append-only.
type ComplaintNote struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaint_id"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

// EmergencyContact holds an optional out-of-band contact for a tenant.
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// Tenant represents a resident occupying an apartment.
//
// BuildingName is a denormalized copy of the referenced building's name.
// At most one active tenant may occupy a given (building, apartment) pair.
type Tenant struct {
	Base
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	BuildingID       string            `json:"building_id"`
	BuildingName     string            `json:"building_name"`
	ApartmentNo      string            `json:"apartment_no"`
	Floor            int               `json:"floor"`
	LeaseStartDate   time.Time         `json:"lease_start_date"`
	LeaseEndDate     *time.Time        `json:"lease_end_date,omitempty"`
	RentAmount       float64           `json:"rent_amount"`
	SecurityDeposit  float64           `json:"security_deposit"`
	Active           bool              `json:"is_active"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
}

// StaffUser represents a member of the building staff. Email is unique among
// staff records.
type StaffUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      StaffRole `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// BuildingSettings is the singleton record describing the managed building.
type BuildingSettings struct {
	ID             string    `json:"id"`
	BuildingName   string    `json:"building_name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zip_code"`
	NumberOfFloors int       `json:"number_of_floors"`
	NumberOfUnits  int       `json:"number_of_units"`
	LogoKey        *string   `json:"logo_key,omitempty"`
	ContactEmail   string    `json:"contact_email"`
	ContactPhone   string    `json:"contact_phone"`
	EmergencyPhone string    `json:"emergency_phone"`
	UpdatedAt      time.Time `json:"updated_at"`
	UpdatedBy      string    `json:"updated_by"`
}

// Change records a single entity mutation within a transaction, for rule
// evaluation and audit.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
