package session

import (
	"testing"
	"time"

	"github.com/steipete/peekaboo-go/internal/model"
)

func result(label string) *model.DetectionResult {
	var els model.DetectedElements
	els.Add(model.DetectedElement{ID: "B1", Type: model.TypeButton, Label: label})
	return &model.DetectionResult{Elements: els}
}

func TestCreateAndPutGet(t *testing.T) {
	s := NewStore(0)
	id := s.Create()
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	if _, ok := s.Get(id); ok {
		t.Error("fresh session should hold no result")
	}

	if err := s.Put(id, result("OK")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := s.Get(id)
	if !ok {
		t.Fatal("Get after Put failed")
	}
	if got.Elements.All[0].Label != "OK" {
		t.Errorf("label = %q, want OK", got.Elements.All[0].Label)
	}
}

func TestPutCreatesSessionImplicitly(t *testing.T) {
	s := NewStore(0)
	if err := s.Put("external-id", result("OK")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok := s.Get("external-id"); !ok {
		t.Error("Put should create the session when missing")
	}
}

func TestPutEmptyID(t *testing.T) {
	s := NewStore(0)
	if err := s.Put("", result("OK")); err == nil {
		t.Error("Put with empty id should fail")
	}
}

func TestPutReplacesSnapshotWhole(t *testing.T) {
	s := NewStore(0)
	id := s.Create()
	if err := s.Put(id, result("first")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(id, result("second")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := s.Get(id)
	if !ok {
		t.Fatal("Get failed")
	}
	if got.Elements.Count() != 1 || got.Elements.All[0].Label != "second" {
		t.Errorf("snapshot not replaced whole: %+v", got.Elements.All)
	}
}

func TestTTLEviction(t *testing.T) {
	s := NewStore(time.Minute)
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	id := s.Create()
	if err := s.Put(id, result("OK")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	now = now.Add(30 * time.Second)
	if _, ok := s.Get(id); !ok {
		t.Error("session evicted before TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := s.Get(id); ok {
		t.Error("session survived past TTL")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after eviction, want 0", s.Len())
	}
}

func TestPutSweepsIdleSessions(t *testing.T) {
	s := NewStore(time.Minute)
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	stale := s.Create()
	if err := s.Put(stale, result("stale")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	now = now.Add(5 * time.Minute)
	fresh := s.Create()
	if err := s.Put(fresh, result("fresh")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1 (stale swept on Put)", s.Len())
	}
	if _, ok := s.Get(stale); ok {
		t.Error("stale session should be gone")
	}
	if _, ok := s.Get(fresh); !ok {
		t.Error("fresh session should survive")
	}
}

func TestGetUnknownSession(t *testing.T) {
	s := NewStore(0)
	if _, ok := s.Get("nope"); ok {
		t.Error("unknown session should miss")
	}
}
