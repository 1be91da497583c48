package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"staffportal/internal/session/core"
)

func TestSaveLoadClearRoundTrip(t *testing.T) {
	slot, err := New(filepath.Join(t.TempDir(), "portal.db"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = slot.Close() }()
	ctx := context.Background()

	if _, ok, err := slot.Load(ctx); err != nil || ok {
		t.Fatalf("empty slot: ok=%v err=%v", ok, err)
	}

	id := core.Identity{ID: "2", Email: "supervisor@building.com", Name: "Jane Supervisor", Role: "Supervisor"}
	if err := slot.Save(ctx, id); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := slot.Load(ctx)
	if err != nil || !ok || got != id {
		t.Fatalf("load: %+v ok=%v err=%v", got, ok, err)
	}

	// Upsert keeps a single row.
	other := core.Identity{ID: "1", Email: "admin@building.com", Name: "John Admin", Role: "Admin"}
	if err := slot.Save(ctx, other); err != nil {
		t.Fatalf("resave: %v", err)
	}
	var count int
	if err := slot.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM session`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row, got %d", count)
	}

	if err := slot.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := slot.Load(ctx); ok {
		t.Fatal("cleared slot must be empty")
	}
}

func TestSlotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.db")
	ctx := context.Background()

	first, err := New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	id := core.Identity{ID: "3", Email: "tech@building.com", Name: "Mike Technician", Role: "Technician"}
	if err := first.Save(ctx, id); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = second.Close() }()
	got, ok, err := second.Load(ctx)
	if err != nil || !ok || got != id {
		t.Fatalf("identity lost across reopen: %+v ok=%v err=%v", got, ok, err)
	}
}
