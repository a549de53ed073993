package stores

import (
	"strings"
	"testing"
	"time"
)

func newMemoryStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStoreSimple(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetResult(t *testing.T) {
	store := newMemoryStore(t)

	result := map[string]interface{}{"tool": "restriction", "result": "EcoRI at 3"}
	if err := store.SaveResult("q-1", "find sites", "restriction", true, result); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	record, err := store.GetByQueryID("q-1")
	if err != nil {
		t.Fatalf("GetByQueryID: %v", err)
	}
	if record.Query != "find sites" || record.Tool != "restriction" || !record.Success {
		t.Errorf("unexpected record: %+v", record)
	}
	if !strings.Contains(record.ResultJSON, "EcoRI at 3") {
		t.Errorf("result not persisted as JSON: %s", record.ResultJSON)
	}

	if _, err := store.GetByQueryID("missing"); err == nil {
		t.Error("expected error for unknown query ID")
	}
}

func TestListRecentOrderAndLimit(t *testing.T) {
	store := newMemoryStore(t)

	for i, id := range []string{"q-1", "q-2", "q-3"} {
		if err := store.SaveResult(id, "query", "gc_content", true, nil); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
	}

	records, err := store.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	all, err := store.ListRecent(0)
	if err != nil {
		t.Fatalf("ListRecent default: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected default limit to cover all 3 records, got %d", len(all))
	}
}

func TestPruneOlderThan(t *testing.T) {
	store := newMemoryStore(t)

	if err := store.SaveResult("old", "old query", "translate", true, nil); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveResult("new", "new query", "translate", true, nil); err != nil {
		t.Fatal(err)
	}

	// age one record past the retention window
	stale := time.Now().Add(-48 * time.Hour)
	if err := store.db.Model(&QueryRecord{}).Where("query_id = ?", "old").Update("created_at", stale).Error; err != nil {
		t.Fatalf("aging record: %v", err)
	}

	n, err := store.PruneOlderThan(24 * time.Hour)
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned record, got %d", n)
	}

	if _, err := store.GetByQueryID("old"); err == nil {
		t.Error("pruned record still present")
	}
	if _, err := store.GetByQueryID("new"); err != nil {
		t.Errorf("recent record should survive pruning: %v", err)
	}
}
