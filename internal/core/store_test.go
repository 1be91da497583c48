package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffportal/pkg/domain"
)

func newTestStore() *MemoryStore {
	return NewMemoryStore(domain.NewRulesEngine())
}

func mustCreateTenant(t *testing.T, store *MemoryStore, tenant Tenant) Tenant {
	t.Helper()
	var created Tenant
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateTenant(tenant)
		return err
	})
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	return created
}

func mustCreateStaff(t *testing.T, store *MemoryStore, staff StaffUser) StaffUser {
	t.Helper()
	var created StaffUser
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateStaff(staff)
		return err
	})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	return created
}

func mustCreateComplaint(t *testing.T, store *MemoryStore, c Complaint) Complaint {
	t.Helper()
	var created Complaint
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateComplaint(c)
		return err
	})
	if err != nil {
		t.Fatalf("create complaint: %v", err)
	}
	return created
}

func testTenant(apartment string) Tenant {
	return Tenant{
		Name:        "Alice Johnson",
		Email:       "alice@example.com",
		BuildingID:  "bld-001",
		ApartmentNo: apartment,
		Active:      true,
	}
}

func testComplaint(tenantID string) Complaint {
	return Complaint{
		TenantID:    tenantID,
		TenantName:  "Alice Johnson",
		ApartmentNo: "101",
		Category:    domain.CategoryAC,
		Title:       "AC broken",
		Description: "No cold air",
		Priority:    domain.PriorityHigh,
	}
}

func TestCreateComplaintDefaults(t *testing.T) {
	store := newTestStore()
	tenant := mustCreateTenant(t, store, testTenant("101"))

	created := mustCreateComplaint(t, store, testComplaint(tenant.ID))
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}
	if created.Status != StatusOpen {
		t.Fatalf("expected default status Open, got %s", created.Status)
	}
	if created.Images == nil || created.Notes == nil {
		t.Fatal("images and notes must be non-nil")
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("timestamps not stamped: %v / %v", created.CreatedAt, created.UpdatedAt)
	}
	if created.ResolvedAt != nil {
		t.Fatal("open complaint must not carry a resolution timestamp")
	}
}

func TestCreateComplaintRejectsBadEnums(t *testing.T) {
	store := newTestStore()
	tenant := mustCreateTenant(t, store, testTenant("101"))

	c := testComplaint(tenant.ID)
	c.Priority = ComplaintPriority("Urgent")
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateComplaint(c)
		return err
	})
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestComplaintCreatedResolvedStampsTimestamp(t *testing.T) {
	store := newTestStore()
	tenant := mustCreateTenant(t, store, testTenant("101"))

	c := testComplaint(tenant.ID)
	c.Status = StatusResolved
	created := mustCreateComplaint(t, store, c)
	if created.ResolvedAt == nil {
		t.Fatal("complaint created as Resolved must carry a resolution timestamp")
	}
}

func TestResolutionTimestampLifecycle(t *testing.T) {
	store := newTestStore()
	tenant := mustCreateTenant(t, store, testTenant("101"))
	created := mustCreateComplaint(t, store, testComplaint(tenant.ID))

	setStatus := func(status ComplaintStatus) Complaint {
		var updated Complaint
		_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
			var err error
			updated, err = tx.UpdateComplaint(created.ID, func(c *Complaint) error {
				c.Status = status
				return nil
			})
			return err
		})
		if err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
		return updated
	}

	resolved := setStatus(StatusResolved)
	if resolved.ResolvedAt == nil {
		t.Fatal("transition into Resolved must stamp ResolvedAt")
	}
	stamp := *resolved.ResolvedAt

	reopened := setStatus(StatusInProgress)
	if reopened.ResolvedAt == nil || !reopened.ResolvedAt.Equal(stamp) {
		t.Fatal("leaving Resolved must retain the previous timestamp")
	}

	store.nowFn = func() time.Time { return stamp.Add(time.Hour) }
	again := setStatus(StatusResolved)
	if again.ResolvedAt == nil || !again.ResolvedAt.After(stamp) {
		t.Fatal("re-resolving must stamp a fresh timestamp")
	}
}

func TestUpdateComplaintPreservesIdentityFields(t *testing.T) {
	store := newTestStore()
	tenant := mustCreateTenant(t, store, testTenant("101"))
	created := mustCreateComplaint(t, store, testComplaint(tenant.ID))

	var updated Complaint
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdateComplaint(created.ID, func(c *Complaint) error {
			c.ID = "hijacked"
			c.CreatedAt = time.Time{}
			c.Title = "AC still broken"
			return nil
		})
		return err
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("ID must be immutable, got %s", updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("CreatedAt must be immutable")
	}
	if updated.Title != "AC still broken" {
		t.Fatalf("mutation lost: %s", updated.Title)
	}
}

func TestAppendComplaintNote(t *testing.T) {
	store := newTestStore()
	tenant := mustCreateTenant(t, store, testTenant("101"))
	created := mustCreateComplaint(t, store, testComplaint(tenant.ID))

	store.nowFn = func() time.Time { return created.UpdatedAt.Add(time.Minute) }
	var note ComplaintNote
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		note, err = tx.AppendComplaintNote(created.ID, ComplaintNote{AuthorID: "s1", AuthorName: "John Admin", Note: "Called the tenant."})
		return err
	})
	if err != nil {
		t.Fatalf("append note: %v", err)
	}
	if note.ID == "" || note.ComplaintID != created.ID {
		t.Fatalf("note identity not filled: %+v", note)
	}

	got, _ := store.GetComplaint(created.ID)
	if len(got.Notes) != 1 || got.Notes[0].Note != "Called the tenant." {
		t.Fatalf("note not attached: %+v", got.Notes)
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("appending a note must bump the complaint UpdatedAt")
	}

	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.AppendComplaintNote(created.ID, ComplaintNote{AuthorID: "s1", Note: "   "})
		return err
	})
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("blank note should fail validation, got %v", err)
	}
}

func TestTenantOccupancyConflict(t *testing.T) {
	store := newTestStore()
	mustCreateTenant(t, store, testTenant("101"))

	second := testTenant("101")
	second.Name = "Bob Smith"
	second.Email = "bob@example.com"
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateTenant(second)
		return err
	})
	var cerr domain.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError for occupied apartment, got %v", err)
	}

	// Same apartment number in another building is free.
	otherBuilding := testTenant("101")
	otherBuilding.Email = "bob@example.com"
	otherBuilding.BuildingID = "bld-002"
	mustCreateTenant(t, store, otherBuilding)
}

func TestInactiveTenantFreesApartment(t *testing.T) {
	store := newTestStore()
	first := mustCreateTenant(t, store, testTenant("101"))

	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.UpdateTenant(first.ID, func(tn *Tenant) error {
			tn.Active = false
			return nil
		})
		return err
	})
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	second := testTenant("101")
	second.Email = "bob@example.com"
	replacement := mustCreateTenant(t, store, second)

	// Reactivating the first tenant now conflicts with the replacement.
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.UpdateTenant(first.ID, func(tn *Tenant) error {
			tn.Active = true
			return nil
		})
		return err
	})
	var cerr domain.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError on reactivation, got %v", err)
	}
	if got, _ := store.GetTenant(replacement.ID); !got.Active {
		t.Fatal("replacement tenant must stay active")
	}
}

func TestStaffEmailUniquenessIsCaseInsensitive(t *testing.T) {
	store := newTestStore()
	mustCreateStaff(t, store, StaffUser{Email: "admin@building.com", Name: "John Admin", Role: domain.RoleAdmin, Active: true})

	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateStaff(StaffUser{Email: "Admin@Building.com", Name: "Impostor", Role: domain.RoleTechnician, Active: true})
		return err
	})
	var cerr domain.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError for duplicate email, got %v", err)
	}
}

func TestDeleteReturnsNotFound(t *testing.T) {
	store := newTestStore()
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return tx.DeleteComplaint("missing")
	})
	var nerr domain.NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListOrderIsInsertionOrder(t *testing.T) {
	store := newTestStore()
	a := mustCreateTenant(t, store, testTenant("101"))
	b2 := testTenant("102")
	b2.Email = "bob@example.com"
	b := mustCreateTenant(t, store, b2)
	c2 := testTenant("103")
	c2.Email = "carol@example.com"
	c := mustCreateTenant(t, store, c2)

	got := store.ListTenants()
	want := []string{a.ID, b.ID, c.ID}
	if len(got) != 3 {
		t.Fatalf("expected 3 tenants, got %d", len(got))
	}
	for i, tn := range got {
		if tn.ID != want[i] {
			t.Fatalf("order mismatch at %d: got %s want %s", i, tn.ID, want[i])
		}
	}
}

func TestReadsReturnClones(t *testing.T) {
	store := newTestStore()
	tenant := mustCreateTenant(t, store, testTenant("101"))
	created := mustCreateComplaint(t, store, testComplaint(tenant.ID))

	got, _ := store.GetComplaint(created.ID)
	got.Title = "tampered"
	got.Images = append(got.Images, "x.png")

	fresh, _ := store.GetComplaint(created.ID)
	if fresh.Title != "AC broken" || len(fresh.Images) != 0 {
		t.Fatal("mutating a read result must not affect committed state")
	}
}

func TestRevisionAdvancesOnCommitOnly(t *testing.T) {
	store := newTestStore()
	before := store.Revision()

	mustCreateTenant(t, store, testTenant("101"))
	if store.Revision() != before+1 {
		t.Fatalf("commit must advance revision: %d -> %d", before, store.Revision())
	}

	mid := store.Revision()
	_, _ = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return errors.New("abort")
	})
	if store.Revision() != mid {
		t.Fatal("failed transaction must not advance revision")
	}
	store.ListTenants()
	if store.Revision() != mid {
		t.Fatal("reads must not advance revision")
	}
}

func TestFailedTransactionLeavesStateUntouched(t *testing.T) {
	store := newTestStore()
	_, _ = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateTenant(testTenant("101")); err != nil {
			return err
		}
		return errors.New("abort after create")
	})
	if got := store.ListTenants(); len(got) != 0 {
		t.Fatalf("aborted transaction must not commit, found %d tenants", len(got))
	}
}

func TestBlockingRuleAbortsCommit(t *testing.T) {
	store := NewMemoryStore(NewDefaultRulesEngine())
	tenant := mustCreateTenant(t, store, testTenant("101"))
	staff := mustCreateStaff(t, store, StaffUser{Email: "tech@building.com", Name: "Mike Technician", Role: domain.RoleTechnician, Active: true})

	c := testComplaint(tenant.ID)
	c.AssignedStaffID = &staff.ID
	c.AssignedStaffName = &staff.Name
	c.Status = StatusInProgress
	created := mustCreateComplaint(t, store, c)

	res, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.UpdateStaff(staff.ID, func(st *StaffUser) error {
			st.Active = false
			return nil
		})
		return err
	})
	var rerr RuleViolationError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RuleViolationError, got %v", err)
	}
	if !res.HasBlocking() {
		t.Fatal("result must carry the blocking violation")
	}
	if got, _ := store.GetStaff(staff.ID); !got.Active {
		t.Fatal("blocked transaction must not commit")
	}
	if got, _ := store.GetComplaint(created.ID); !got.Assigned() {
		t.Fatal("complaint assignment must be unchanged")
	}
}

func TestImportExportStateRoundTrip(t *testing.T) {
	store := newTestStore()
	tenant := mustCreateTenant(t, store, testTenant("101"))
	mustCreateComplaint(t, store, testComplaint(tenant.ID))

	snapshot := store.ExportState()
	if len(snapshot.Tenants) != 1 || len(snapshot.Complaints) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}

	fresh := newTestStore()
	fresh.ImportState(snapshot)
	if len(fresh.ListTenants()) != 1 || len(fresh.ListComplaints()) != 1 {
		t.Fatal("import must restore all records")
	}
	got, ok := fresh.GetTenant(tenant.ID)
	if !ok || got.Name != tenant.Name {
		t.Fatalf("tenant not restored: %+v", got)
	}
}
