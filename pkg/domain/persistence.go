package domain

import "context"

// Transaction exposes the domain mutations a store must support within an
// atomic scope. A failed operation leaves committed state untouched.
type Transaction interface {
	Snapshot() TransactionView
	CreateComplaint(Complaint) (Complaint, error)
	UpdateComplaint(id string, mutator func(*Complaint) error) (Complaint, error)
	DeleteComplaint(id string) error
	AppendComplaintNote(complaintID string, note ComplaintNote) (ComplaintNote, error)
	CreateTenant(Tenant) (Tenant, error)
	UpdateTenant(id string, mutator func(*Tenant) error) (Tenant, error)
	DeleteTenant(id string) error
	CreateStaff(StaffUser) (StaffUser, error)
	UpdateStaff(id string, mutator func(*StaffUser) error) (StaffUser, error)
	DeleteStaff(id string) error
	UpdateSettings(mutator func(*BuildingSettings) error) (BuildingSettings, error)
	FindTenant(id string) (Tenant, bool)
	FindStaff(id string) (StaffUser, bool)
}

// TransactionView provides read-only access to snapshot data for rules.
type TransactionView = RuleView

// Store is a minimal abstraction over the in-memory state. It mirrors the
// subset of store capabilities used directly by higher layers.
type Store interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	Revision() uint64
	GetComplaint(id string) (Complaint, bool)
	ListComplaints() []Complaint
	GetTenant(id string) (Tenant, bool)
	ListTenants() []Tenant
	GetStaff(id string) (StaffUser, bool)
	ListStaff() []StaffUser
	GetSettings() (BuildingSettings, bool)
}
