package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"staffportal/internal/blob"
	"staffportal/pkg/domain"

	"github.com/google/uuid"
)

// RecentComplaintsLimit bounds the dashboard's most-recent list.
const RecentComplaintsLimit = 5

// Service exposes higher-level transactional CRUD operations for the portal
// schema. It owns the denormalized display-name copies: whenever a referenced
// tenant or staff record changes, the copies on complaints are rewritten in
// the same transaction.
type Service struct {
	store   *MemoryStore
	logos   blob.Store
	metrics MetricsRecorder

	dashMu   sync.Mutex
	dashRev  uint64
	dash     DashboardSnapshot
	dashInit bool
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics attaches a metrics recorder; operations report duration and
// outcome per operation name.
func WithMetrics(rec MetricsRecorder) Option {
	return func(s *Service) { s.metrics = rec }
}

// WithLogoStore attaches the blob store backing logo uploads.
func WithLogoStore(store blob.Store) Option {
	return func(s *Service) { s.logos = store }
}

// NewService constructs a service backed by the supplied store.
func NewService(store *MemoryStore, opts ...Option) *Service {
	s := &Service{store: store, metrics: noopMetrics{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service and in-memory store with the given
// rules engine.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	return NewService(NewMemoryStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() *MemoryStore {
	return s.store
}

func (s *Service) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordDuration(op, time.Since(start))
	s.metrics.RecordResult(op, status)
}

// Complaints -----------------------------------------------------------------

// CreateComplaint persists a new complaint, denormalizing the tenant's name
// and apartment number from the referenced tenant record.
func (s *Service) CreateComplaint(ctx context.Context, complaint Complaint) (Complaint, Result, error) {
	start := time.Now()
	var created Complaint
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		tenant, ok := tx.FindTenant(complaint.TenantID)
		if !ok {
			return domain.NotFoundError{Entity: EntityTenant, ID: complaint.TenantID}
		}
		complaint.TenantName = tenant.Name
		complaint.ApartmentNo = tenant.ApartmentNo
		var err error
		created, err = tx.CreateComplaint(complaint)
		return err
	})
	s.observe("create_complaint", start, err)
	return created, res, err
}

// UpdateComplaint mutates a complaint using the provided mutator.
func (s *Service) UpdateComplaint(ctx context.Context, id string, mutator func(*Complaint) error) (Complaint, Result, error) {
	start := time.Now()
	var updated Complaint
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateComplaint(id, mutator)
		return err
	})
	s.observe("update_complaint", start, err)
	return updated, res, err
}

// UpdateComplaintStatus sets a complaint's workflow status. Reaching Resolved
// stamps ResolvedAt; regressing afterwards leaves the stamp in place.
func (s *Service) UpdateComplaintStatus(ctx context.Context, id string, status ComplaintStatus) (Complaint, Result, error) {
	return s.UpdateComplaint(ctx, id, func(c *Complaint) error {
		c.Status = status
		return nil
	})
}

// AssignStaff assigns a staff member to a complaint, refreshing the
// denormalized staff name and moving the complaint to In Progress.
func (s *Service) AssignStaff(ctx context.Context, complaintID, staffID string) (Complaint, Result, error) {
	start := time.Now()
	var updated Complaint
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		staff, ok := tx.FindStaff(staffID)
		if !ok {
			return domain.NotFoundError{Entity: EntityStaffUser, ID: staffID}
		}
		var err error
		updated, err = tx.UpdateComplaint(complaintID, func(c *Complaint) error {
			c.AssignedStaffID = &staff.ID
			c.AssignedStaffName = &staff.Name
			c.Status = StatusInProgress
			return nil
		})
		return err
	})
	s.observe("assign_staff", start, err)
	return updated, res, err
}

// AddNote appends an internal note to a complaint. The author's display name
// is denormalized from the staff record at append time.
func (s *Service) AddNote(ctx context.Context, complaintID, authorID, text string) (ComplaintNote, Result, error) {
	start := time.Now()
	var created ComplaintNote
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		author, ok := tx.FindStaff(authorID)
		if !ok {
			return domain.NotFoundError{Entity: EntityStaffUser, ID: authorID}
		}
		var err error
		created, err = tx.AppendComplaintNote(complaintID, ComplaintNote{
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Note:       text,
		})
		return err
	})
	s.observe("add_note", start, err)
	return created, res, err
}

// DeleteComplaint removes a complaint record. The UI never calls this today;
// the operation exists for parity with the rest of the surface.
func (s *Service) DeleteComplaint(ctx context.Context, id string) (Result, error) {
	start := time.Now()
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteComplaint(id)
	})
	s.observe("delete_complaint", start, err)
	return res, err
}

// GetComplaint returns a complaint by ID.
func (s *Service) GetComplaint(id string) (Complaint, error) {
	c, ok := s.store.GetComplaint(id)
	if !ok {
		return Complaint{}, domain.NotFoundError{Entity: EntityComplaint, ID: id}
	}
	return c, nil
}

// ListComplaints returns all complaints in insertion order.
func (s *Service) ListComplaints() []Complaint {
	return s.store.ListComplaints()
}

// FilterComplaints returns complaints matching the criteria, order preserved.
func (s *Service) FilterComplaints(filter domain.ComplaintFilter) []Complaint {
	return domain.FilterComplaints(s.store.ListComplaints(), filter)
}

// Tenants --------------------------------------------------------------------

// CreateTenant persists a new tenant, enforcing the single-active-occupant
// invariant per (building, apartment) pair.
func (s *Service) CreateTenant(ctx context.Context, tenant Tenant) (Tenant, Result, error) {
	start := time.Now()
	var created Tenant
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateTenant(tenant)
		return err
	})
	s.observe("create_tenant", start, err)
	return created, res, err
}

// UpdateTenant mutates a tenant. If the tenant's name or apartment number
// changed, the denormalized copies on that tenant's complaints are rewritten
// in the same transaction.
func (s *Service) UpdateTenant(ctx context.Context, id string, mutator func(*Tenant) error) (Tenant, Result, error) {
	start := time.Now()
	var updated Tenant
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		before, ok := tx.FindTenant(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityTenant, ID: id}
		}
		var err error
		updated, err = tx.UpdateTenant(id, mutator)
		if err != nil {
			return err
		}
		if before.Name == updated.Name && before.ApartmentNo == updated.ApartmentNo {
			return nil
		}
		return refreshTenantCopies(tx, updated)
	})
	s.observe("update_tenant", start, err)
	return updated, res, err
}

// DeactivateTenant clears the tenant's active flag, freeing the apartment.
func (s *Service) DeactivateTenant(ctx context.Context, id string) (Tenant, Result, error) {
	return s.UpdateTenant(ctx, id, func(t *Tenant) error {
		t.Active = false
		return nil
	})
}

// ActivateTenant sets the tenant's active flag, re-checking occupancy.
func (s *Service) ActivateTenant(ctx context.Context, id string) (Tenant, Result, error) {
	return s.UpdateTenant(ctx, id, func(t *Tenant) error {
		t.Active = true
		return nil
	})
}

// DeleteTenant removes a tenant record.
func (s *Service) DeleteTenant(ctx context.Context, id string) (Result, error) {
	start := time.Now()
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteTenant(id)
	})
	s.observe("delete_tenant", start, err)
	return res, err
}

// GetTenant returns a tenant by ID.
func (s *Service) GetTenant(id string) (Tenant, error) {
	t, ok := s.store.GetTenant(id)
	if !ok {
		return Tenant{}, domain.NotFoundError{Entity: EntityTenant, ID: id}
	}
	return t, nil
}

// ListTenants returns all tenants in insertion order.
func (s *Service) ListTenants() []Tenant {
	return s.store.ListTenants()
}

// SearchTenants returns tenants matching the free-text query.
func (s *Service) SearchTenants(query string) []Tenant {
	return domain.FilterTenants(s.store.ListTenants(), domain.TenantFilter{Query: query})
}

// SearchStaff returns staff users matching the free-text query. Role names
// participate in the match.
func (s *Service) SearchStaff(query string) []StaffUser {
	return domain.FilterStaff(s.store.ListStaff(), domain.StaffFilter{Query: query})
}

// Staff ----------------------------------------------------------------------

// CreateStaff persists a new staff user, enforcing email uniqueness.
func (s *Service) CreateStaff(ctx context.Context, staff StaffUser) (StaffUser, Result, error) {
	start := time.Now()
	var created StaffUser
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateStaff(staff)
		return err
	})
	s.observe("create_staff", start, err)
	return created, res, err
}

// UpdateStaff mutates a staff user. A name change rewrites the denormalized
// assigned-staff name on every complaint assigned to them, in the same
// transaction.
func (s *Service) UpdateStaff(ctx context.Context, id string, mutator func(*StaffUser) error) (StaffUser, Result, error) {
	start := time.Now()
	var updated StaffUser
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		before, ok := tx.FindStaff(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityStaffUser, ID: id}
		}
		var err error
		updated, err = tx.UpdateStaff(id, mutator)
		if err != nil {
			return err
		}
		if before.Name == updated.Name {
			return nil
		}
		return refreshStaffCopies(tx, updated)
	})
	s.observe("update_staff", start, err)
	return updated, res, err
}

// DeactivateStaff clears the staff user's active flag. Complaints still
// assigned to them will block the transaction via the assigned-staff rule, so
// callers reassign first.
func (s *Service) DeactivateStaff(ctx context.Context, id string) (StaffUser, Result, error) {
	return s.UpdateStaff(ctx, id, func(st *StaffUser) error {
		st.Active = false
		return nil
	})
}

// ActivateStaff sets the staff user's active flag.
func (s *Service) ActivateStaff(ctx context.Context, id string) (StaffUser, Result, error) {
	return s.UpdateStaff(ctx, id, func(st *StaffUser) error {
		st.Active = true
		return nil
	})
}

// DeleteStaff removes a staff user record.
func (s *Service) DeleteStaff(ctx context.Context, id string) (Result, error) {
	start := time.Now()
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteStaff(id)
	})
	s.observe("delete_staff", start, err)
	return res, err
}

// GetStaff returns a staff user by ID.
func (s *Service) GetStaff(id string) (StaffUser, error) {
	st, ok := s.store.GetStaff(id)
	if !ok {
		return StaffUser{}, domain.NotFoundError{Entity: EntityStaffUser, ID: id}
	}
	return st, nil
}

// ListStaff returns all staff users in insertion order.
func (s *Service) ListStaff() []StaffUser {
	return s.store.ListStaff()
}

// StaffByEmail resolves a staff user by email, case-insensitively.
func (s *Service) StaffByEmail(email string) (StaffUser, bool) {
	for _, st := range s.store.ListStaff() {
		if strings.EqualFold(st.Email, email) {
			return st, true
		}
	}
	return StaffUser{}, false
}

// FilterStaff returns staff users matching the criteria, order preserved.
func (s *Service) FilterStaff(filter domain.StaffFilter) []StaffUser {
	return domain.FilterStaff(s.store.ListStaff(), filter)
}

// ActiveTechnicians returns the active technicians, the assignment candidates
// offered by the complaint detail view.
func (s *Service) ActiveTechnicians() []StaffUser {
	active := true
	return s.FilterStaff(domain.StaffFilter{
		Roles:  []StaffRole{domain.RoleTechnician},
		Active: &active,
	})
}

// Settings -------------------------------------------------------------------

// GetSettings returns the singleton building settings record.
func (s *Service) GetSettings() (BuildingSettings, error) {
	settings, ok := s.store.GetSettings()
	if !ok {
		return BuildingSettings{}, domain.NotFoundError{Entity: EntitySettings, ID: "singleton"}
	}
	return settings, nil
}

// UpdateSettings mutates the building settings, stamping the updater's name.
func (s *Service) UpdateSettings(ctx context.Context, updatedBy string, mutator func(*BuildingSettings) error) (BuildingSettings, Result, error) {
	start := time.Now()
	var updated BuildingSettings
	res, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateSettings(func(cfg *BuildingSettings) error {
			if err := mutator(cfg); err != nil {
				return err
			}
			cfg.UpdatedBy = updatedBy
			return nil
		})
		return err
	})
	s.observe("update_settings", start, err)
	return updated, res, err
}

// UploadLogo stores the logo bytes in the blob store and returns the opaque
// key. Callers persist the key via UpdateSettings; upload and settings write
// are deliberately separate steps, matching the portal's two-phase flow.
func (s *Service) UploadLogo(ctx context.Context, filename string, r io.Reader) (string, error) {
	start := time.Now()
	key, err := s.uploadLogo(ctx, filename, r)
	s.observe("upload_logo", start, err)
	return key, err
}

func (s *Service) uploadLogo(ctx context.Context, filename string, r io.Reader) (string, error) {
	if s.logos == nil {
		return "", fmt.Errorf("upload logo: no blob store configured")
	}
	ext := path.Ext(filename)
	key := "logos/" + uuid.NewString() + ext
	if _, err := s.logos.Put(ctx, key, r, blob.PutOptions{
		ContentType: logoContentType(ext),
		Metadata:    map[string]string{"filename": filename},
	}); err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}
	return key, nil
}

// LogoURL resolves a browsable URL for a stored logo key. Backends without
// URL support yield an empty string.
func (s *Service) LogoURL(ctx context.Context, key string) (string, error) {
	if s.logos == nil {
		return "", fmt.Errorf("logo url: no blob store configured")
	}
	u, err := s.logos.PresignURL(ctx, key, blob.SignedURLOptions{})
	if errors.Is(err, blob.ErrUnsupported) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u, nil
}

func logoContentType(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// Derived aggregates ---------------------------------------------------------

// DashboardSnapshot aggregates the complaint figures shown on the dashboard.
type DashboardSnapshot struct {
	Total      int
	ByStatus   map[ComplaintStatus]int
	Unassigned int
	Recent     []Complaint
}

// Dashboard returns the derived complaint aggregates. The snapshot is
// memoized against the store revision: repeated reads without intervening
// mutation reuse the previous computation.
func (s *Service) Dashboard() DashboardSnapshot {
	s.dashMu.Lock()
	defer s.dashMu.Unlock()

	rev := s.store.Revision()
	if s.dashInit && rev == s.dashRev {
		return cloneDashboard(s.dash)
	}

	complaints := s.store.ListComplaints()
	snap := DashboardSnapshot{
		Total:    len(complaints),
		ByStatus: make(map[ComplaintStatus]int),
	}
	for _, c := range complaints {
		snap.ByStatus[c.Status]++
		if !c.Assigned() {
			snap.Unassigned++
		}
	}
	recent := append([]Complaint(nil), complaints...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > RecentComplaintsLimit {
		recent = recent[:RecentComplaintsLimit]
	}
	snap.Recent = recent

	s.dash = snap
	s.dashRev = rev
	s.dashInit = true
	return cloneDashboard(snap)
}

func cloneDashboard(snap DashboardSnapshot) DashboardSnapshot {
	cp := snap
	cp.ByStatus = make(map[ComplaintStatus]int, len(snap.ByStatus))
	for k, v := range snap.ByStatus {
		cp.ByStatus[k] = v
	}
	cp.Recent = append([]Complaint(nil), snap.Recent...)
	return cp
}

// Denormalized copy refresh --------------------------------------------------

func refreshTenantCopies(tx domain.Transaction, tenant Tenant) error {
	for _, complaint := range tx.Snapshot().ListComplaints() {
		if complaint.TenantID != tenant.ID {
			continue
		}
		if _, err := tx.UpdateComplaint(complaint.ID, func(c *Complaint) error {
			c.TenantName = tenant.Name
			c.ApartmentNo = tenant.ApartmentNo
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func refreshStaffCopies(tx domain.Transaction, staff StaffUser) error {
	for _, complaint := range tx.Snapshot().ListComplaints() {
		if !complaint.Assigned() || *complaint.AssignedStaffID != staff.ID {
			continue
		}
		if _, err := tx.UpdateComplaint(complaint.ID, func(c *Complaint) error {
			name := staff.Name
			c.AssignedStaffName = &name
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
