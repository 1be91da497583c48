package core

import (
	"context"
	"strings"
	"sync"
	"time"

	"staffportal/pkg/domain"

	"github.com/google/uuid"
)

// memoryState holds every record family plus an insertion-order index per
// family. Maps alone would lose ordering; List must return records in stable
// insertion order so repeated reads without intervening mutation are equal.
type memoryState struct {
	complaints     map[string]Complaint
	complaintOrder []string
	tenants        map[string]Tenant
	tenantOrder    []string
	staff          map[string]StaffUser
	staffOrder     []string
	settings       *BuildingSettings
}

func newMemoryState() memoryState {
	return memoryState{
		complaints: make(map[string]Complaint),
		tenants:    make(map[string]Tenant),
		staff:      make(map[string]StaffUser),
	}
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.complaints {
		cloned.complaints[k] = cloneComplaint(v)
	}
	for k, v := range s.tenants {
		cloned.tenants[k] = cloneTenant(v)
	}
	for k, v := range s.staff {
		cloned.staff[k] = cloneStaff(v)
	}
	cloned.complaintOrder = append([]string(nil), s.complaintOrder...)
	cloned.tenantOrder = append([]string(nil), s.tenantOrder...)
	cloned.staffOrder = append([]string(nil), s.staffOrder...)
	if s.settings != nil {
		settings := cloneSettings(*s.settings)
		cloned.settings = &settings
	}
	return cloned
}

func cloneComplaint(c Complaint) Complaint {
	cp := c
	cp.AssignedStaffID = cloneStringPtr(c.AssignedStaffID)
	cp.AssignedStaffName = cloneStringPtr(c.AssignedStaffName)
	cp.ResolvedAt = cloneTimePtr(c.ResolvedAt)
	cp.Images = append([]string(nil), c.Images...)
	cp.Notes = append([]ComplaintNote(nil), c.Notes...)
	return cp
}

func cloneTenant(t Tenant) Tenant {
	cp := t
	cp.LeaseEndDate = cloneTimePtr(t.LeaseEndDate)
	if t.EmergencyContact != nil {
		contact := *t.EmergencyContact
		cp.EmergencyContact = &contact
	}
	return cp
}

func cloneStaff(s StaffUser) StaffUser { return s }

func cloneSettings(s BuildingSettings) BuildingSettings {
	cp := s
	cp.LogoKey = cloneStringPtr(s.LogoKey)
	return cp
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// MemoryStore provides the in-memory transactional store for the portal
// domain. All reads return clones; committed state is never aliased by
// callers. Concurrent writers serialize on the store mutex with last-write-
// wins semantics per record.
type MemoryStore struct {
	mu       sync.RWMutex
	state    memoryState
	revision uint64
	engine   *RulesEngine
	nowFn    func() time.Time
}

// NewMemoryStore constructs an in-memory store backed by the provided rules
// engine. A nil engine gets an empty one.
func NewMemoryStore(engine *RulesEngine) *MemoryStore {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &MemoryStore{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) newID() string {
	return uuid.NewString()
}

// Revision returns a counter incremented on every committed transaction.
// Derived views key recompute-on-read memoization off this value instead of
// subscribing to a hidden reactivity graph.
func (s *MemoryStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Snapshot is a portable copy of the full store state, in insertion order.
type Snapshot struct {
	Complaints []Complaint       `json:"complaints"`
	Tenants    []Tenant          `json:"tenants"`
	Staff      []StaffUser       `json:"staff"`
	Settings   *BuildingSettings `json:"settings,omitempty"`
}

// ImportState replaces the committed state with the snapshot contents,
// bypassing rule evaluation. Used by seeding and state hydration.
func (s *MemoryStore) ImportState(snapshot Snapshot) {
	state := newMemoryState()
	for _, c := range snapshot.Complaints {
		state.complaints[c.ID] = cloneComplaint(c)
		state.complaintOrder = append(state.complaintOrder, c.ID)
	}
	for _, t := range snapshot.Tenants {
		state.tenants[t.ID] = cloneTenant(t)
		state.tenantOrder = append(state.tenantOrder, t.ID)
	}
	for _, st := range snapshot.Staff {
		state.staff[st.ID] = cloneStaff(st)
		state.staffOrder = append(state.staffOrder, st.ID)
	}
	if snapshot.Settings != nil {
		settings := cloneSettings(*snapshot.Settings)
		state.settings = &settings
	}
	s.mu.Lock()
	s.state = state
	s.revision++
	s.mu.Unlock()
}

// ExportState returns a deep copy of the committed state.
func (s *MemoryStore) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := Snapshot{}
	for _, id := range s.state.complaintOrder {
		snapshot.Complaints = append(snapshot.Complaints, cloneComplaint(s.state.complaints[id]))
	}
	for _, id := range s.state.tenantOrder {
		snapshot.Tenants = append(snapshot.Tenants, cloneTenant(s.state.tenants[id]))
	}
	for _, id := range s.state.staffOrder {
		snapshot.Staff = append(snapshot.Staff, cloneStaff(s.state.staff[id]))
	}
	if s.state.settings != nil {
		settings := cloneSettings(*s.state.settings)
		snapshot.Settings = &settings
	}
	return snapshot
}

// Transaction represents a mutation set applied to the store state.
type Transaction struct {
	store   *MemoryStore
	state   memoryState
	changes []Change
	now     time.Time
}

// transactionView exposes a read-only snapshot of transactional state to rules.
type transactionView struct {
	state *memoryState
}

// Snapshot returns a read-only view of the transaction's pending state.
func (tx *Transaction) Snapshot() domain.TransactionView {
	return transactionView{state: &tx.state}
}

// ListComplaints returns all complaints within the snapshot, insertion order.
func (v transactionView) ListComplaints() []Complaint {
	return listComplaints(v.state)
}

// ListTenants returns all tenants within the snapshot, insertion order.
func (v transactionView) ListTenants() []Tenant {
	return listTenants(v.state)
}

// ListStaff returns all staff users within the snapshot, insertion order.
func (v transactionView) ListStaff() []StaffUser {
	return listStaff(v.state)
}

// FindComplaint retrieves a complaint by ID from the snapshot.
func (v transactionView) FindComplaint(id string) (Complaint, bool) {
	c, ok := v.state.complaints[id]
	if !ok {
		return Complaint{}, false
	}
	return cloneComplaint(c), true
}

// FindTenant retrieves a tenant by ID from the snapshot.
func (v transactionView) FindTenant(id string) (Tenant, bool) {
	t, ok := v.state.tenants[id]
	if !ok {
		return Tenant{}, false
	}
	return cloneTenant(t), true
}

// FindStaff retrieves a staff user by ID from the snapshot.
func (v transactionView) FindStaff(id string) (StaffUser, bool) {
	st, ok := v.state.staff[id]
	if !ok {
		return StaffUser{}, false
	}
	return cloneStaff(st), true
}

// Settings returns the singleton settings record from the snapshot.
func (v transactionView) Settings() (BuildingSettings, bool) {
	if v.state.settings == nil {
		return BuildingSettings{}, false
	}
	return cloneSettings(*v.state.settings), true
}

func listComplaints(state *memoryState) []Complaint {
	out := make([]Complaint, 0, len(state.complaintOrder))
	for _, id := range state.complaintOrder {
		out = append(out, cloneComplaint(state.complaints[id]))
	}
	return out
}

func listTenants(state *memoryState) []Tenant {
	out := make([]Tenant, 0, len(state.tenantOrder))
	for _, id := range state.tenantOrder {
		out = append(out, cloneTenant(state.tenants[id]))
	}
	return out
}

func listStaff(state *memoryState) []StaffUser {
	out := make([]StaffUser, 0, len(state.staffOrder))
	for _, id := range state.staffOrder {
		out = append(out, cloneStaff(state.staff[id]))
	}
	return out
}

// RunInTransaction executes fn within a transactional copy of the store
// state. Rules evaluate against the pending snapshot; blocking violations
// abort the commit and the committed state stays untouched.
func (s *MemoryStore) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := transactionView{state: &tx.state}
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	s.revision++
	return result, nil
}

// View executes fn against a read-only snapshot of committed state.
func (s *MemoryStore) View(ctx context.Context, fn func(domain.TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(transactionView{state: &snapshot})
}

func (tx *Transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// occupancyKey identifies an apartment within a building.
func occupancyKey(buildingID, apartmentNo string) string {
	return buildingID + "/" + apartmentNo
}

// activeOccupant returns the active tenant occupying the apartment, skipping
// excludeID (the record being updated).
func (tx *Transaction) activeOccupant(buildingID, apartmentNo, excludeID string) (Tenant, bool) {
	for _, id := range tx.state.tenantOrder {
		t := tx.state.tenants[id]
		if t.ID == excludeID || !t.Active {
			continue
		}
		if occupancyKey(t.BuildingID, t.ApartmentNo) == occupancyKey(buildingID, apartmentNo) {
			return cloneTenant(t), true
		}
	}
	return Tenant{}, false
}

// staffEmailTaken reports whether another staff record already uses email.
// Comparison is case-insensitive.
func (tx *Transaction) staffEmailTaken(email, excludeID string) bool {
	for _, id := range tx.state.staffOrder {
		st := tx.state.staff[id]
		if st.ID == excludeID {
			continue
		}
		if strings.EqualFold(st.Email, email) {
			return true
		}
	}
	return false
}

// CreateComplaint stores a new complaint within the transaction. An empty
// status defaults to Open; a status of Resolved stamps ResolvedAt.
func (tx *Transaction) CreateComplaint(c Complaint) (Complaint, error) {
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	if _, exists := tx.state.complaints[c.ID]; exists {
		return Complaint{}, domain.ConflictError{Entity: EntityComplaint, Field: "id", Value: c.ID}
	}
	if c.Status == "" {
		c.Status = StatusOpen
	}
	if err := validateComplaint(c); err != nil {
		return Complaint{}, err
	}
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	if c.Status == StatusResolved && c.ResolvedAt == nil {
		resolved := tx.now
		c.ResolvedAt = &resolved
	}
	if c.Images == nil {
		c.Images = []string{}
	}
	if c.Notes == nil {
		c.Notes = []ComplaintNote{}
	}
	tx.state.complaints[c.ID] = cloneComplaint(c)
	tx.state.complaintOrder = append(tx.state.complaintOrder, c.ID)
	tx.recordChange(Change{Entity: EntityComplaint, Action: ActionCreate, After: cloneComplaint(c)})
	return cloneComplaint(c), nil
}

// UpdateComplaint mutates a complaint using the provided mutator function.
// A transition into Resolved stamps ResolvedAt; leaving Resolved never clears
// a previously set timestamp (legacy contract, preserved deliberately).
func (tx *Transaction) UpdateComplaint(id string, mutator func(*Complaint) error) (Complaint, error) {
	current, ok := tx.state.complaints[id]
	if !ok {
		return Complaint{}, domain.NotFoundError{Entity: EntityComplaint, ID: id}
	}
	before := cloneComplaint(current)
	if err := mutator(&current); err != nil {
		return Complaint{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	if err := validateComplaint(current); err != nil {
		return Complaint{}, err
	}
	current.UpdatedAt = tx.now
	if current.Status == StatusResolved && (before.Status != StatusResolved || current.ResolvedAt == nil) {
		resolved := tx.now
		current.ResolvedAt = &resolved
	}
	tx.state.complaints[id] = cloneComplaint(current)
	tx.recordChange(Change{Entity: EntityComplaint, Action: ActionUpdate, Before: before, After: cloneComplaint(current)})
	return cloneComplaint(current), nil
}

// DeleteComplaint removes a complaint from the transaction state.
func (tx *Transaction) DeleteComplaint(id string) error {
	current, ok := tx.state.complaints[id]
	if !ok {
		return domain.NotFoundError{Entity: EntityComplaint, ID: id}
	}
	delete(tx.state.complaints, id)
	tx.state.complaintOrder = removeID(tx.state.complaintOrder, id)
	tx.recordChange(Change{Entity: EntityComplaint, Action: ActionDelete, Before: cloneComplaint(current)})
	return nil
}

// AppendComplaintNote appends an immutable note to the complaint and bumps
// the complaint's UpdatedAt. The note sequence is append-only.
func (tx *Transaction) AppendComplaintNote(complaintID string, note ComplaintNote) (ComplaintNote, error) {
	current, ok := tx.state.complaints[complaintID]
	if !ok {
		return ComplaintNote{}, domain.NotFoundError{Entity: EntityComplaint, ID: complaintID}
	}
	if strings.TrimSpace(note.Note) == "" {
		return ComplaintNote{}, domain.ValidationError{Entity: EntityComplaintNote, Field: "note", Reason: "is required"}
	}
	if note.AuthorID == "" {
		return ComplaintNote{}, domain.ValidationError{Entity: EntityComplaintNote, Field: "author_id", Reason: "is required"}
	}
	note.ID = tx.store.newID()
	note.ComplaintID = complaintID
	note.CreatedAt = tx.now
	current.Notes = append(append([]ComplaintNote(nil), current.Notes...), note)
	current.UpdatedAt = tx.now
	tx.state.complaints[complaintID] = cloneComplaint(current)
	tx.recordChange(Change{Entity: EntityComplaintNote, Action: ActionCreate, After: note})
	return note, nil
}

// CreateTenant stores a new tenant. An active draft conflicts when its
// (building, apartment) pair already has an active occupant; an apartment
// whose only occupants are inactive is free.
func (tx *Transaction) CreateTenant(t Tenant) (Tenant, error) {
	if t.ID == "" {
		t.ID = tx.store.newID()
	}
	if _, exists := tx.state.tenants[t.ID]; exists {
		return Tenant{}, domain.ConflictError{Entity: EntityTenant, Field: "id", Value: t.ID}
	}
	if err := validateTenant(t); err != nil {
		return Tenant{}, err
	}
	if t.Active {
		if _, occupied := tx.activeOccupant(t.BuildingID, t.ApartmentNo, t.ID); occupied {
			return Tenant{}, domain.ConflictError{Entity: EntityTenant, Field: "apartment", Value: occupancyKey(t.BuildingID, t.ApartmentNo)}
		}
	}
	t.CreatedAt = tx.now
	t.UpdatedAt = tx.now
	tx.state.tenants[t.ID] = cloneTenant(t)
	tx.state.tenantOrder = append(tx.state.tenantOrder, t.ID)
	tx.recordChange(Change{Entity: EntityTenant, Action: ActionCreate, After: cloneTenant(t)})
	return cloneTenant(t), nil
}

// UpdateTenant mutates a tenant. The occupancy invariant is re-checked after
// the mutator runs, excluding the record itself.
func (tx *Transaction) UpdateTenant(id string, mutator func(*Tenant) error) (Tenant, error) {
	current, ok := tx.state.tenants[id]
	if !ok {
		return Tenant{}, domain.NotFoundError{Entity: EntityTenant, ID: id}
	}
	before := cloneTenant(current)
	if err := mutator(&current); err != nil {
		return Tenant{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	if err := validateTenant(current); err != nil {
		return Tenant{}, err
	}
	if current.Active {
		if _, occupied := tx.activeOccupant(current.BuildingID, current.ApartmentNo, id); occupied {
			return Tenant{}, domain.ConflictError{Entity: EntityTenant, Field: "apartment", Value: occupancyKey(current.BuildingID, current.ApartmentNo)}
		}
	}
	current.UpdatedAt = tx.now
	tx.state.tenants[id] = cloneTenant(current)
	tx.recordChange(Change{Entity: EntityTenant, Action: ActionUpdate, Before: before, After: cloneTenant(current)})
	return cloneTenant(current), nil
}

// DeleteTenant removes a tenant from the transaction state.
func (tx *Transaction) DeleteTenant(id string) error {
	current, ok := tx.state.tenants[id]
	if !ok {
		return domain.NotFoundError{Entity: EntityTenant, ID: id}
	}
	delete(tx.state.tenants, id)
	tx.state.tenantOrder = removeID(tx.state.tenantOrder, id)
	tx.recordChange(Change{Entity: EntityTenant, Action: ActionDelete, Before: cloneTenant(current)})
	return nil
}

// CreateStaff stores a new staff user. Email is unique among staff records.
func (tx *Transaction) CreateStaff(st StaffUser) (StaffUser, error) {
	if st.ID == "" {
		st.ID = tx.store.newID()
	}
	if _, exists := tx.state.staff[st.ID]; exists {
		return StaffUser{}, domain.ConflictError{Entity: EntityStaffUser, Field: "id", Value: st.ID}
	}
	if err := validateStaff(st); err != nil {
		return StaffUser{}, err
	}
	if tx.staffEmailTaken(st.Email, st.ID) {
		return StaffUser{}, domain.ConflictError{Entity: EntityStaffUser, Field: "email", Value: st.Email}
	}
	st.CreatedAt = tx.now
	tx.state.staff[st.ID] = cloneStaff(st)
	tx.state.staffOrder = append(tx.state.staffOrder, st.ID)
	tx.recordChange(Change{Entity: EntityStaffUser, Action: ActionCreate, After: cloneStaff(st)})
	return cloneStaff(st), nil
}

// UpdateStaff mutates a staff user. Email uniqueness is re-checked after the
// mutator runs, excluding the record itself.
func (tx *Transaction) UpdateStaff(id string, mutator func(*StaffUser) error) (StaffUser, error) {
	current, ok := tx.state.staff[id]
	if !ok {
		return StaffUser{}, domain.NotFoundError{Entity: EntityStaffUser, ID: id}
	}
	before := cloneStaff(current)
	if err := mutator(&current); err != nil {
		return StaffUser{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	if err := validateStaff(current); err != nil {
		return StaffUser{}, err
	}
	if tx.staffEmailTaken(current.Email, id) {
		return StaffUser{}, domain.ConflictError{Entity: EntityStaffUser, Field: "email", Value: current.Email}
	}
	tx.state.staff[id] = cloneStaff(current)
	tx.recordChange(Change{Entity: EntityStaffUser, Action: ActionUpdate, Before: before, After: cloneStaff(current)})
	return cloneStaff(current), nil
}

// DeleteStaff removes a staff user from the transaction state.
func (tx *Transaction) DeleteStaff(id string) error {
	current, ok := tx.state.staff[id]
	if !ok {
		return domain.NotFoundError{Entity: EntityStaffUser, ID: id}
	}
	delete(tx.state.staff, id)
	tx.state.staffOrder = removeID(tx.state.staffOrder, id)
	tx.recordChange(Change{Entity: EntityStaffUser, Action: ActionDelete, Before: cloneStaff(current)})
	return nil
}

// UpdateSettings mutates the singleton building settings record, creating an
// empty one on first write.
func (tx *Transaction) UpdateSettings(mutator func(*BuildingSettings) error) (BuildingSettings, error) {
	var current BuildingSettings
	var before any
	if tx.state.settings != nil {
		current = cloneSettings(*tx.state.settings)
		before = cloneSettings(current)
	}
	if err := mutator(&current); err != nil {
		return BuildingSettings{}, err
	}
	if current.ID == "" {
		current.ID = tx.store.newID()
	}
	current.UpdatedAt = tx.now
	updated := cloneSettings(current)
	tx.state.settings = &updated
	tx.recordChange(Change{Entity: EntitySettings, Action: ActionUpdate, Before: before, After: cloneSettings(current)})
	return cloneSettings(current), nil
}

// FindTenant retrieves a tenant by ID from the pending transaction state.
func (tx *Transaction) FindTenant(id string) (Tenant, bool) {
	t, ok := tx.state.tenants[id]
	if !ok {
		return Tenant{}, false
	}
	return cloneTenant(t), true
}

// FindStaff retrieves a staff user by ID from the pending transaction state.
func (tx *Transaction) FindStaff(id string) (StaffUser, bool) {
	st, ok := tx.state.staff[id]
	if !ok {
		return StaffUser{}, false
	}
	return cloneStaff(st), true
}

func removeID(order []string, id string) []string {
	out := order[:0]
	for _, candidate := range order {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

// Read helpers ---------------------------------------------------------------

// GetComplaint retrieves a complaint by ID from committed state.
func (s *MemoryStore) GetComplaint(id string) (Complaint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.complaints[id]
	if !ok {
		return Complaint{}, false
	}
	return cloneComplaint(c), true
}

// ListComplaints returns all complaints from committed state, insertion order.
func (s *MemoryStore) ListComplaints() []Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listComplaints(&s.state)
}

// GetTenant retrieves a tenant by ID from committed state.
func (s *MemoryStore) GetTenant(id string) (Tenant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.state.tenants[id]
	if !ok {
		return Tenant{}, false
	}
	return cloneTenant(t), true
}

// ListTenants returns all tenants from committed state, insertion order.
func (s *MemoryStore) ListTenants() []Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listTenants(&s.state)
}

// GetStaff retrieves a staff user by ID from committed state.
func (s *MemoryStore) GetStaff(id string) (StaffUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.state.staff[id]
	if !ok {
		return StaffUser{}, false
	}
	return cloneStaff(st), true
}

// ListStaff returns all staff users from committed state, insertion order.
func (s *MemoryStore) ListStaff() []StaffUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listStaff(&s.state)
}

// GetSettings returns the singleton settings record from committed state.
func (s *MemoryStore) GetSettings() (BuildingSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.settings == nil {
		return BuildingSettings{}, false
	}
	return cloneSettings(*s.state.settings), true
}
