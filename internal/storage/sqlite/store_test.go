package sqlite

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/julianstephens/garden/internal/errors"
	"github.com/julianstephens/garden/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "garden.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadBeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "garden.db"))
	if err := store.Load(); err == nil {
		t.Error("expected load of uninitialized storage to fail")
	}
}

func TestHabitCRUD(t *testing.T) {
	store := setupTestStore(t)

	created, err := store.AddHabit(models.NewHabit{Name: "Read", Color: "#0ea5e9"})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	habits, err := store.GetHabits()
	if err != nil {
		t.Fatalf("failed to get habits: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	if habits[0].Name != "Read" || habits[0].Color != "#0ea5e9" {
		t.Errorf("unexpected habit: %+v", habits[0])
	}

	neg := true
	updated, err := store.UpdateHabit(created.ID, models.HabitUpdate{IsNegative: &neg})
	if err != nil {
		t.Fatalf("failed to update habit: %v", err)
	}
	if !updated.IsNegative {
		t.Error("update not applied")
	}

	if err := store.DeleteHabit(created.ID); err != nil {
		t.Fatalf("failed to delete habit: %v", err)
	}
	if err := store.DeleteHabit(created.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestHabitValidationErrors(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.AddHabit(models.NewHabit{Name: ""}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("expected ErrValidation for empty name, got %v", err)
	}
	if _, err := store.UpdateHabit("nope", models.HabitUpdate{}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestWeeklyGoalStoredNotEnforced(t *testing.T) {
	store := setupTestStore(t)

	h, err := store.AddHabit(models.NewHabit{Name: "Gym", Frequency: "weekly", GoalPerWeek: 3})
	if err != nil {
		t.Fatalf("failed to add weekly habit: %v", err)
	}
	if h.GoalPerWeek != 3 {
		t.Errorf("expected goal 3, got %d", h.GoalPerWeek)
	}

	// The goal never gates completion: a log past the goal is still accepted
	for _, date := range []string{"2026-08-03", "2026-08-04", "2026-08-05", "2026-08-06"} {
		if err := store.UpsertHabitLog(h.ID, date); err != nil {
			t.Fatalf("upsert beyond weekly goal failed: %v", err)
		}
	}
	logs, _ := store.GetHabitLogs("2026-08-03", "2026-08-06")
	if len(logs) != 4 {
		t.Errorf("expected 4 logs, got %d", len(logs))
	}
}

func TestSubHabitTreeAndNonCascadingDelete(t *testing.T) {
	store := setupTestStore(t)

	parent, _ := store.AddHabit(models.NewHabit{Name: "Workout"})
	sub, err := store.AddHabit(models.NewHabit{Name: "Warmup", ParentID: parent.ID})
	if err != nil {
		t.Fatalf("failed to add sub-habit: %v", err)
	}

	habits, _ := store.GetHabits()
	if len(habits) != 1 || len(habits[0].SubHabits) != 1 {
		t.Fatalf("unexpected tree: %+v", habits)
	}
	if habits[0].SubHabits[0].ID != sub.ID {
		t.Errorf("wrong sub-habit attached: %+v", habits[0].SubHabits)
	}

	// Deleting the parent leaves the child row; it just stops surfacing
	if err := store.DeleteHabit(parent.ID); err != nil {
		t.Fatalf("failed to delete parent: %v", err)
	}
	habits, _ = store.GetHabits()
	if len(habits) != 0 {
		t.Errorf("expected empty tree after parent delete, got %+v", habits)
	}
	if _, err := store.getHabitRecord(sub.ID); err != nil {
		t.Errorf("orphaned sub row should still exist: %v", err)
	}
}

func TestMoveHabitRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	var ids []string
	for _, name := range []string{"First", "Second", "Third"} {
		h, err := store.AddHabit(models.NewHabit{Name: name})
		if err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
		ids = append(ids, h.ID)
	}

	names := func() []string {
		habits, err := store.GetHabits()
		if err != nil {
			t.Fatalf("failed to get habits: %v", err)
		}
		var out []string
		for _, h := range habits {
			out = append(out, h.Name)
		}
		return out
	}

	if err := store.MoveHabitDown(ids[0]); err != nil {
		t.Fatalf("move down failed: %v", err)
	}
	got := names()
	if got[0] != "Second" || got[1] != "First" {
		t.Errorf("after move down: %v", got)
	}

	if err := store.MoveHabitUp(ids[0]); err != nil {
		t.Fatalf("move up failed: %v", err)
	}
	got = names()
	if got[0] != "First" || got[1] != "Second" || got[2] != "Third" {
		t.Errorf("round trip should restore order: %v", got)
	}

	// First up and last down are no-ops
	if err := store.MoveHabitUp(ids[0]); err != nil {
		t.Fatalf("boundary move failed: %v", err)
	}
	if err := store.MoveHabitDown(ids[2]); err != nil {
		t.Fatalf("boundary move failed: %v", err)
	}
	got = names()
	if got[0] != "First" || got[2] != "Third" {
		t.Errorf("boundary moves should not reorder: %v", got)
	}
}

func TestHabitLogUniqueness(t *testing.T) {
	store := setupTestStore(t)
	h, _ := store.AddHabit(models.NewHabit{Name: "Run"})

	for i := 0; i < 3; i++ {
		if err := store.UpsertHabitLog(h.ID, "2026-08-01"); err != nil {
			t.Fatalf("upsert %d failed: %v", i, err)
		}
	}
	logs, err := store.GetHabitLogs("", "")
	if err != nil {
		t.Fatalf("failed to get logs: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("expected 1 log after repeated upserts, got %d", len(logs))
	}

	if err := store.DeleteHabitLog(h.ID, "2026-08-01"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	logs, _ = store.GetHabitLogs("", "")
	if len(logs) != 0 {
		t.Errorf("expected no logs after delete, got %d", len(logs))
	}
}

func TestDeleteHabitRemovesOwnLogsOnly(t *testing.T) {
	store := setupTestStore(t)

	h1, _ := store.AddHabit(models.NewHabit{Name: "Run"})
	h2, _ := store.AddHabit(models.NewHabit{Name: "Read"})
	store.UpsertHabitLog(h1.ID, "2026-08-01")
	store.UpsertHabitLog(h2.ID, "2026-08-01")

	if err := store.DeleteHabit(h1.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	logs, _ := store.GetHabitLogs("", "")
	if len(logs) != 1 || logs[0].HabitID != h2.ID {
		t.Errorf("expected only h2's log to survive, got %+v", logs)
	}
}

func TestPageCRUD(t *testing.T) {
	store := setupTestStore(t)

	page, err := store.AddPage(models.NewPage{
		Title:      "Garden",
		Slug:       "garden",
		Body:       "growing things",
		Images:     []string{"/a.jpg", "/b.jpg"},
		IsFeatured: true,
		Published:  true,
	})
	if err != nil {
		t.Fatalf("failed to add page: %v", err)
	}

	got, err := store.GetPageBySlug("garden")
	if err != nil {
		t.Fatalf("slug lookup failed: %v", err)
	}
	if got.ID != page.ID || got.Body != "growing things" {
		t.Errorf("unexpected page: %+v", got)
	}
	if len(got.Images) != 2 || got.Images[0] != "/a.jpg" {
		t.Errorf("images did not round trip: %v", got.Images)
	}

	featured, _ := store.GetFeaturedPages()
	if len(featured) != 1 {
		t.Errorf("expected 1 featured page, got %d", len(featured))
	}
	nav, _ := store.GetNavPages()
	if len(nav) != 0 {
		t.Errorf("featured page must not be a nav page, got %d", len(nav))
	}

	title := "Secret Garden"
	updated, err := store.UpdatePage(page.ID, models.PageUpdate{Title: &title})
	if err != nil {
		t.Fatalf("failed to update page: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title not updated: %+v", updated)
	}

	if err := store.DeletePage(page.ID); err != nil {
		t.Fatalf("failed to delete page: %v", err)
	}
	if _, err := store.GetPageBySlug("garden"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestNotes(t *testing.T) {
	store := setupTestStore(t)

	note, err := store.AddNote("hello")
	if err != nil {
		t.Fatalf("failed to add note: %v", err)
	}

	notes, err := store.GetNotes()
	if err != nil {
		t.Fatalf("failed to get notes: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "hello" {
		t.Errorf("unexpected notes: %+v", notes)
	}

	if err := store.DeleteNote(note.ID); err != nil {
		t.Fatalf("failed to delete note: %v", err)
	}
	if err := store.DeleteNote(note.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSettingsUpsert(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.GetSetting("current_song"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unset key, got %v", err)
	}

	if err := store.SetSetting("current_song", json.RawMessage(`{"title":"Everlong"}`)); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}
	// Upsert replaces on the same key
	if err := store.SetSetting("current_song", json.RawMessage(`{"title":"Alive"}`)); err != nil {
		t.Fatalf("failed to overwrite setting: %v", err)
	}

	raw, err := store.GetSetting("current_song")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	var song struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(raw, &song); err != nil || song.Title != "Alive" {
		t.Errorf("setting round trip failed: %s, %v", raw, err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garden.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init: %v", err)
	}
	h, err := store.AddHabit(models.NewHabit{Name: "Run"})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	defer reopened.Close()

	habits, err := reopened.GetHabits()
	if err != nil {
		t.Fatalf("failed to get habits: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != h.ID {
		t.Errorf("state lost across reopen: %+v", habits)
	}
}
