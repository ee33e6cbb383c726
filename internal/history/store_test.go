package history

import (
	"testing"
	"time"

	"github.com/file-processor/backend/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)

	rec := &models.RunRecord{
		ID:        "run-1",
		CreatedAt: time.Now().UnixMilli(),
		FileList:  "sales.csv, app.log",
		Mode:      "parallel",
		ElapsedMs: 42,
		Status:    "partial",
		Report:    "=== Batch Report ===\n",
	}
	if err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected a record")
	}
	if got.Mode != "parallel" || got.Status != "partial" || got.ElapsedMs != 42 {
		t.Errorf("Round-trip mismatch: %+v", got)
	}
	if got.ReportPath != "" {
		t.Errorf("Expected empty report path, got %q", got.ReportPath)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)
	got, err := store.GetRun("absent")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for a missing run, got %+v", got)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().UnixMilli()
	for i, id := range []string{"old", "mid", "new"} {
		rec := &models.RunRecord{
			ID:        id,
			CreatedAt: base + int64(i*1000),
			FileList:  "f.csv",
			Mode:      "sequential",
			Status:    "success",
			Report:    "r",
		}
		if err := store.SaveRun(rec); err != nil {
			t.Fatalf("SaveRun %s failed: %v", id, err)
		}
	}

	records, err := store.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != "new" || records[1].ID != "mid" {
		t.Errorf("Expected newest first, got %s then %s", records[0].ID, records[1].ID)
	}
}
