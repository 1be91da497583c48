package seed

import (
	"testing"

	"staffportal/internal/core"
	"staffportal/pkg/domain"
)

func TestDemoSnapshotShape(t *testing.T) {
	snap := DemoSnapshot()
	if len(snap.Staff) != 5 || len(snap.Tenants) != 5 || len(snap.Complaints) != 5 {
		t.Fatalf("unexpected dataset sizes: %d staff, %d tenants, %d complaints",
			len(snap.Staff), len(snap.Tenants), len(snap.Complaints))
	}
	if snap.Settings == nil || snap.Settings.BuildingName != "Sunset Towers" {
		t.Fatalf("unexpected settings: %+v", snap.Settings)
	}
}

func TestDemoStaffRolesAndActivity(t *testing.T) {
	store := core.NewMemoryStore(core.NewDefaultRulesEngine())
	Apply(store)

	admin, ok := store.GetStaff("1")
	if !ok {
		t.Fatal("missing staff 1")
	}
	if admin.Role != domain.RoleAdmin || admin.Email != "admin@building.com" {
		t.Fatalf("unexpected admin account: %+v", admin)
	}
	tom, ok := store.GetStaff("5")
	if !ok {
		t.Fatal("missing staff 5")
	}
	if tom.Active {
		t.Fatal("staff 5 ships deactivated")
	}
}

func TestDemoComplaintWorkflowStates(t *testing.T) {
	store := core.NewMemoryStore(core.NewDefaultRulesEngine())
	Apply(store)

	resolved, ok := store.GetComplaint("3")
	if !ok {
		t.Fatal("missing complaint 3")
	}
	if resolved.Status != domain.StatusResolved || resolved.ResolvedAt == nil {
		t.Fatalf("complaint 3 must ship resolved with a timestamp: %+v", resolved)
	}
	if resolved.AssignedStaffName == nil || *resolved.AssignedStaffName != "Mike Technician" {
		t.Fatalf("complaint 3 assignment: %+v", resolved.AssignedStaffName)
	}

	inProgress, ok := store.GetComplaint("2")
	if !ok {
		t.Fatal("missing complaint 2")
	}
	if inProgress.Status != domain.StatusInProgress || len(inProgress.Notes) != 1 {
		t.Fatalf("complaint 2 must ship in progress with one note: %+v", inProgress)
	}
}

func TestApplyReplacesExistingState(t *testing.T) {
	store := core.NewMemoryStore(core.NewDefaultRulesEngine())
	Apply(store)
	Apply(store)

	if got := len(store.ListComplaints()); got != 5 {
		t.Fatalf("re-seeding must replace, not append: %d complaints", got)
	}
	if got := len(store.ListStaff()); got != 5 {
		t.Fatalf("re-seeding must replace, not append: %d staff", got)
	}
}

func TestSeedSatisfiesDefaultRules(t *testing.T) {
	store := core.NewMemoryStore(core.NewDefaultRulesEngine())
	Apply(store)

	for _, c := range store.ListComplaints() {
		if !c.Assigned() {
			continue
		}
		staff, ok := store.GetStaff(*c.AssignedStaffID)
		if !ok {
			t.Fatalf("complaint %s assigned to unknown staff %s", c.ID, *c.AssignedStaffID)
		}
		if !staff.Active {
			t.Fatalf("complaint %s assigned to inactive staff %s", c.ID, staff.ID)
		}
	}
}
