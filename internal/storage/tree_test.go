package storage

import (
	"testing"
	"time"

	"github.com/julianstephens/garden/internal/constants"
	"github.com/julianstephens/garden/internal/models"
)

func TestBuildHabitTreeOrdering(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []models.HabitRecord{
		{ID: "c", Name: "C", OrderIndex: 3, CreatedAt: base},
		{ID: "a", Name: "A", OrderIndex: 1, CreatedAt: base},
		{ID: "b", Name: "B", OrderIndex: 2, CreatedAt: base},
		// Same order index as b, later creation time breaks the tie
		{ID: "b2", Name: "B2", OrderIndex: 2, CreatedAt: base.Add(time.Hour)},
	}

	habits := BuildHabitTree(records, nil)
	if len(habits) != 4 {
		t.Fatalf("expected 4 habits, got %d", len(habits))
	}
	want := []string{"A", "B", "B2", "C"}
	for i, w := range want {
		if habits[i].Name != w {
			t.Errorf("habits[%d] = %s, want %s", i, habits[i].Name, w)
		}
	}
}

func TestBuildHabitTreeAttachesChildrenAndLogs(t *testing.T) {
	now := time.Now()
	records := []models.HabitRecord{
		{ID: "p", Name: "Workout", OrderIndex: 1, CreatedAt: now},
		{ID: "s2", Name: "Cardio", ParentID: "p", OrderIndex: 3, CreatedAt: now},
		{ID: "s1", Name: "Warmup", ParentID: "p", OrderIndex: 2, CreatedAt: now},
	}
	logs := []models.HabitLog{
		{ID: "l1", HabitID: "s1", DateCompleted: "2026-08-01"},
		{ID: "l2", HabitID: "p", DateCompleted: "2026-08-02"},
	}

	habits := BuildHabitTree(records, logs)
	if len(habits) != 1 {
		t.Fatalf("expected 1 parent, got %d", len(habits))
	}

	h := habits[0]
	if len(h.SubHabits) != 2 {
		t.Fatalf("expected 2 sub-habits, got %d", len(h.SubHabits))
	}
	if h.SubHabits[0].ID != "s1" || h.SubHabits[1].ID != "s2" {
		t.Errorf("sub-habits out of order: %+v", h.SubHabits)
	}
	if !h.Logs["2026-08-02"] {
		t.Error("parent log missing")
	}
	if !h.SubHabits[0].Logs["2026-08-01"] {
		t.Error("sub-habit log missing")
	}
	// Logs maps are always usable, even with no rows
	if h.SubHabits[1].Logs == nil {
		t.Error("sub-habit without logs should still get a non-nil map")
	}
}

func TestBuildHabitTreeDropsOrphans(t *testing.T) {
	now := time.Now()
	records := []models.HabitRecord{
		{ID: "p", Name: "Workout", OrderIndex: 1, CreatedAt: now},
		{ID: "orphan", Name: "Lost", ParentID: "gone", OrderIndex: 2, CreatedAt: now},
	}

	habits := BuildHabitTree(records, nil)
	if len(habits) != 1 || habits[0].ID != "p" {
		t.Errorf("orphan rows must not surface: %+v", habits)
	}
}

func TestApplyHabitUpdateFrequencyRules(t *testing.T) {
	weekly := constants.FrequencyWeekly
	daily := constants.FrequencyDaily

	// Switching to weekly without a goal defaults it
	r := models.HabitRecord{Name: "Run", Frequency: daily}
	ApplyHabitUpdate(&r, models.HabitUpdate{Frequency: &weekly})
	if r.GoalPerWeek != constants.DefaultGoalPerWeek {
		t.Errorf("expected default weekly goal, got %d", r.GoalPerWeek)
	}

	// Switching back to daily clears the goal
	ApplyHabitUpdate(&r, models.HabitUpdate{Frequency: &daily})
	if r.GoalPerWeek != 0 {
		t.Errorf("expected goal cleared for daily, got %d", r.GoalPerWeek)
	}

	// An explicit goal sticks on weekly habits
	goal := 4
	ApplyHabitUpdate(&r, models.HabitUpdate{Frequency: &weekly, GoalPerWeek: &goal})
	if r.GoalPerWeek != 4 {
		t.Errorf("expected goal 4, got %d", r.GoalPerWeek)
	}
}
