package habit

import (
	"errors"
	"fmt"
	"testing"

	gardenerrors "github.com/julianstephens/garden/internal/errors"
)

// fakeLogWriter records calls and fails for ids in failIDs.
type fakeLogWriter struct {
	upserts []string
	deletes []string
	failIDs map[string]bool
}

func (f *fakeLogWriter) UpsertHabitLog(habitID, date string) error {
	if f.failIDs[habitID] {
		return fmt.Errorf("connection reset")
	}
	f.upserts = append(f.upserts, habitID+"/"+date)
	return nil
}

func (f *fakeLogWriter) DeleteHabitLog(habitID, date string) error {
	if f.failIDs[habitID] {
		return fmt.Errorf("connection reset")
	}
	f.deletes = append(f.deletes, habitID+"/"+date)
	return nil
}

func TestBufferStageAndResolve(t *testing.T) {
	b := NewBuffer()

	// Fallback wins when nothing is staged
	if b.Resolve("h1", "2026-08-01", true) != true {
		t.Error("expected fallback true when nothing staged")
	}
	if b.Resolve("h1", "2026-08-01", false) != false {
		t.Error("expected fallback false when nothing staged")
	}

	b.Stage("h1", "2026-08-01", true)
	if !b.Resolve("h1", "2026-08-01", false) {
		t.Error("staged true should override committed false")
	}

	// Restaging the same key overwrites
	b.Stage("h1", "2026-08-01", false)
	if b.Resolve("h1", "2026-08-01", true) {
		t.Error("staged false should override committed true")
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 staged entry after overwrite, got %d", b.Len())
	}

	// Same habit on a different date is a distinct entry
	b.Stage("h1", "2026-08-02", true)
	if b.Len() != 2 {
		t.Errorf("expected 2 staged entries, got %d", b.Len())
	}
}

func TestBufferPendingOrder(t *testing.T) {
	b := NewBuffer()
	b.Stage("b", "2026-08-02", true)
	b.Stage("a", "2026-08-03", false)
	b.Stage("b", "2026-08-01", true)
	b.Stage("a", "2026-08-01", true)

	pending := b.Pending()
	if len(pending) != 4 {
		t.Fatalf("expected 4 pending logs, got %d", len(pending))
	}

	want := []struct{ id, date string }{
		{"a", "2026-08-01"},
		{"a", "2026-08-03"},
		{"b", "2026-08-01"},
		{"b", "2026-08-02"},
	}
	for i, w := range want {
		if pending[i].HabitID != w.id || pending[i].Date != w.date {
			t.Errorf("pending[%d] = %s/%s, want %s/%s",
				i, pending[i].HabitID, pending[i].Date, w.id, w.date)
		}
	}
}

func TestBufferCommitAll(t *testing.T) {
	b := NewBuffer()
	b.Stage("h1", "2026-08-01", true)
	b.Stage("h2", "2026-08-01", false)

	store := &fakeLogWriter{}
	res, err := b.Commit(store)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if res.Applied != 2 {
		t.Errorf("expected 2 applied, got %d", res.Applied)
	}
	if len(res.Failed) != 0 {
		t.Errorf("expected no failures, got %d", len(res.Failed))
	}
	if len(store.upserts) != 1 || store.upserts[0] != "h1/2026-08-01" {
		t.Errorf("unexpected upserts: %v", store.upserts)
	}
	if len(store.deletes) != 1 || store.deletes[0] != "h2/2026-08-01" {
		t.Errorf("unexpected deletes: %v", store.deletes)
	}
	if b.Len() != 0 {
		t.Errorf("expected empty buffer after full commit, got %d entries", b.Len())
	}
}

func TestBufferCommitPartialFailure(t *testing.T) {
	b := NewBuffer()
	b.Stage("bad", "2026-08-01", true)
	b.Stage("good", "2026-08-01", true)
	b.Stage("good", "2026-08-02", false)

	store := &fakeLogWriter{failIDs: map[string]bool{"bad": true}}
	res, err := b.Commit(store)
	if err == nil {
		t.Fatal("expected error from partial commit failure")
	}
	if !errors.Is(err, gardenerrors.ErrBackend) {
		t.Errorf("expected ErrBackend, got %v", err)
	}
	if res.Applied != 2 {
		t.Errorf("expected 2 applied, got %d", res.Applied)
	}
	if len(res.Failed) != 1 {
		t.Fatalf("expected 1 failed entry, got %d", len(res.Failed))
	}
	if res.Failed[0].HabitID != "bad" {
		t.Errorf("expected failed entry for habit bad, got %s", res.Failed[0].HabitID)
	}

	// Failed entry stays staged so a retry can pick it up
	if b.Len() != 1 {
		t.Fatalf("expected 1 entry retained after partial failure, got %d", b.Len())
	}
	if !b.Resolve("bad", "2026-08-01", false) {
		t.Error("retained entry should still resolve to its staged value")
	}

	// Retry against a healthy store drains the buffer
	res, err = b.Commit(&fakeLogWriter{})
	if err != nil {
		t.Fatalf("retry commit failed: %v", err)
	}
	if res.Applied != 1 || b.Len() != 0 {
		t.Errorf("expected retry to flush the retained entry, applied=%d len=%d", res.Applied, b.Len())
	}
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer()
	b.Stage("h1", "2026-08-01", true)
	b.Stage("h2", "2026-08-01", true)

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("expected empty buffer after reset, got %d entries", b.Len())
	}
	if b.Resolve("h1", "2026-08-01", false) {
		t.Error("reset buffer should fall back to committed value")
	}
}
