package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/mindful.db"

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeyTheme, "dark"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migration is not re-run destructively.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, ok, err := s2.Get(KeyTheme)
	if err != nil || !ok || v != "dark" {
		t.Fatalf("expected persisted theme dark, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Key/value
// ============================================================

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)
	v, ok, err := s.Get("nonexistent")
	if err != nil {
		t.Fatal(err)
	}
	if ok || v != "" {
		t.Fatalf("expected missing key, got %q ok=%v", v, ok)
	}
}

func TestSetAndGet(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set(KeyFocusSessions, `{"date":"Sun Oct 18 2026","count":2}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(KeyFocusSessions)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `{"date":"Sun Oct 18 2026","count":2}` {
		t.Fatalf("unexpected value %q", v)
	}
}

func TestSetOverwrite(t *testing.T) {
	s := newTestStore(t)
	s.Set("key", "v1")
	s.Set("key", "v2")
	v, _, _ := s.Get("key")
	if v != "v2" {
		t.Fatalf("expected v2, got %s", v)
	}
}

func TestAllSortedByKey(t *testing.T) {
	s := newTestStore(t)
	s.Set(KeyTheme, "light")
	s.Set(KeyBackgroundImage, "https://example.com/a.jpg")
	s.Set(KeyQuickLinks, "[]")

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("entries not sorted: %s >= %s", all[i-1].Key, all[i].Key)
		}
	}
}

func TestAllEmpty(t *testing.T) {
	s := newTestStore(t)
	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if all != nil {
		t.Fatalf("expected nil slice, got %d items", len(all))
	}
}

func TestClearKeepsStatusRecords(t *testing.T) {
	s := newTestStore(t)
	s.Set(KeyTheme, "dark")
	s.InsertStatus(StatusCheck{ID: "a", ClientName: "Keep me", Timestamp: time.Now()})

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	all, _ := s.All()
	if len(all) != 0 {
		t.Fatalf("expected empty kv after clear, got %d", len(all))
	}
	if _, err := s.GetStatus("a"); err != nil {
		t.Fatalf("status record should survive clear: %v", err)
	}
}

func TestKeysCoverDashboard(t *testing.T) {
	if len(Keys) != 7 {
		t.Fatalf("expected 7 dashboard keys, got %d", len(Keys))
	}
	seen := map[string]bool{}
	for _, k := range Keys {
		if seen[k] {
			t.Fatalf("duplicate key %s", k)
		}
		seen[k] = true
	}
}

// ============================================================
// Status records
// ============================================================

func TestInsertAndGetStatus(t *testing.T) {
	s := newTestStore(t)
	ts := time.Date(2026, time.October, 18, 8, 0, 0, 123, time.UTC)
	created, err := s.InsertStatus(StatusCheck{ID: "id-1", ClientName: "Buy milk", Timestamp: ts})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetStatus("id-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ClientName != "Buy milk" || got.Completed {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.Timestamp.Equal(ts) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, ts)
	}
	if created.ID != got.ID || !created.Timestamp.Equal(got.Timestamp) {
		t.Fatalf("insert returned %+v, stored %+v", created, got)
	}
}

func TestCorruptTimestampIsAnError(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.db.Exec(
		`INSERT INTO status_checks (id, client_name, completed, timestamp) VALUES ('bad', 'x', 0, 'yesterday')`,
	); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetStatus("bad"); err == nil {
		t.Fatal("expected an error for an unparsable timestamp")
	}
	if _, err := s.ListStatus(0); err == nil {
		t.Fatal("expected list to fail on an unparsable timestamp")
	}
}

func TestInsertStatusDuplicateID(t *testing.T) {
	s := newTestStore(t)
	s.InsertStatus(StatusCheck{ID: "dup", ClientName: "a", Timestamp: time.Now()})
	if _, err := s.InsertStatus(StatusCheck{ID: "dup", ClientName: "b", Timestamp: time.Now()}); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestGetStatusNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetStatus("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListStatusOldestFirst(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	s.InsertStatus(StatusCheck{ID: "b", ClientName: "second", Timestamp: now})
	s.InsertStatus(StatusCheck{ID: "a", ClientName: "first", Timestamp: now.Add(-time.Hour)})

	list, err := s.ListStatus(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("expected oldest first, got %s, %s", list[0].ID, list[1].ID)
	}
}

func TestListStatusLimit(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		s.InsertStatus(StatusCheck{
			ID:         string(rune('a' + i)),
			ClientName: "task",
			Timestamp:  now.Add(time.Duration(i) * time.Second),
		})
	}
	list, _ := s.ListStatus(3)
	if len(list) != 3 {
		t.Fatalf("expected 3 records with limit, got %d", len(list))
	}
}

func TestListStatusEmpty(t *testing.T) {
	s := newTestStore(t)
	list, err := s.ListStatus(0)
	if err != nil {
		t.Fatal(err)
	}
	if list != nil {
		t.Fatal("expected nil slice for empty listing")
	}
}

func TestDeleteStatus(t *testing.T) {
	s := newTestStore(t)
	s.InsertStatus(StatusCheck{ID: "x", ClientName: "gone", Timestamp: time.Now()})
	s.InsertStatus(StatusCheck{ID: "y", ClientName: "stays", Timestamp: time.Now()})

	if err := s.DeleteStatus("x"); err != nil {
		t.Fatal(err)
	}
	list, _ := s.ListStatus(0)
	if len(list) != 1 || list[0].ID != "y" {
		t.Fatalf("expected only y to remain, got %+v", list)
	}
}

func TestDeleteStatusNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteStatus("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListStatusSubSecondOrder(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC)
	s.InsertStatus(StatusCheck{ID: "later", ClientName: "b", Timestamp: base.Add(500 * time.Millisecond)})
	s.InsertStatus(StatusCheck{ID: "whole", ClientName: "a", Timestamp: base})

	list, _ := s.ListStatus(0)
	if len(list) != 2 || list[0].ID != "whole" {
		t.Fatalf("expected whole-second record first, got %+v", list)
	}
}
