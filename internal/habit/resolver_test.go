package habit

import (
	"testing"

	"github.com/julianstephens/garden/internal/constants"
	"github.com/julianstephens/garden/internal/models"
)

const day = "2026-08-15"

func workoutHabit(subLogs map[string]bool) models.Habit {
	subs := []models.SubHabit{
		{ID: "warmup", Name: "Warmup", ParentID: "workout", Logs: map[string]bool{}},
		{ID: "cardio", Name: "Cardio", ParentID: "workout", Logs: map[string]bool{}},
		{ID: "weights", Name: "Weights", ParentID: "workout", Logs: map[string]bool{}},
	}
	for i := range subs {
		if subLogs[subs[i].ID] {
			subs[i].Logs[day] = true
		}
	}
	return models.Habit{
		ID:        "workout",
		Name:      "Workout",
		Logs:      map[string]bool{},
		SubHabits: subs,
	}
}

func TestParentCompletionTriState(t *testing.T) {
	tests := []struct {
		name    string
		subLogs map[string]bool
		want    constants.CompletionState
	}{
		{"no sub-habits complete", nil, constants.CompletionNone},
		{"some sub-habits complete", map[string]bool{"warmup": true}, constants.CompletionPartial},
		{"two of three complete", map[string]bool{"warmup": true, "cardio": true}, constants.CompletionPartial},
		{"all sub-habits complete", map[string]bool{"warmup": true, "cardio": true, "weights": true}, constants.CompletionComplete},
	}

	b := NewBuffer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := workoutHabit(tt.subLogs)
			if got := b.ParentCompletion(h, day); got != tt.want {
				t.Errorf("ParentCompletion = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParentCompletionIgnoresOwnLog(t *testing.T) {
	b := NewBuffer()

	// Parent's own entry set, no sub-habits done: rollup stays NONE
	h := workoutHabit(nil)
	h.Logs[day] = true
	if got := b.ParentCompletion(h, day); got != constants.CompletionNone {
		t.Errorf("ParentCompletion with only own log = %v, want none", got)
	}

	// All subs done, own entry unset: rollup is COMPLETE
	h = workoutHabit(map[string]bool{"warmup": true, "cardio": true, "weights": true})
	if got := b.ParentCompletion(h, day); got != constants.CompletionComplete {
		t.Errorf("ParentCompletion with all subs = %v, want complete", got)
	}
}

func TestParentCompletionLeafHabit(t *testing.T) {
	b := NewBuffer()
	h := models.Habit{ID: "water", Name: "Drink water", Logs: map[string]bool{}}

	if got := b.ParentCompletion(h, day); got != constants.CompletionNone {
		t.Errorf("leaf without log = %v, want none", got)
	}

	h.Logs[day] = true
	if got := b.ParentCompletion(h, day); got != constants.CompletionComplete {
		t.Errorf("leaf with log = %v, want complete", got)
	}
}

func TestPendingOverridesCommitted(t *testing.T) {
	b := NewBuffer()
	h := workoutHabit(map[string]bool{"warmup": true, "cardio": true, "weights": true})

	// Staging one sub off demotes the rollup from complete to partial
	b.Stage("weights", day, false)
	if got := b.ParentCompletion(h, day); got != constants.CompletionPartial {
		t.Errorf("ParentCompletion with one sub staged off = %v, want partial", got)
	}

	if b.SubCompleted(h.SubHabits[2], day) {
		t.Error("staged false should win over committed true")
	}
}

func TestToggleParentStagesAllSubs(t *testing.T) {
	b := NewBuffer()

	// Not all complete: toggle stages every sub to true
	h := workoutHabit(map[string]bool{"warmup": true})
	b.Toggle(h, day)
	for _, sub := range h.SubHabits {
		if !b.SubCompleted(sub, day) {
			t.Errorf("sub %s not staged complete after parent toggle", sub.ID)
		}
	}
	// Parent's own entry is never staged by a parent toggle
	if b.Resolve("workout", day, false) {
		t.Error("parent toggle must not stage the parent's own entry")
	}
	if b.Len() != 3 {
		t.Errorf("expected 3 staged entries, got %d", b.Len())
	}

	// Now all resolve complete: a second toggle stages every sub to false
	b.Toggle(h, day)
	for _, sub := range h.SubHabits {
		if b.SubCompleted(sub, day) {
			t.Errorf("sub %s still complete after second parent toggle", sub.ID)
		}
	}
}

func TestToggleLeafFlipsOwnEntry(t *testing.T) {
	b := NewBuffer()
	h := models.Habit{ID: "water", Logs: map[string]bool{day: true}}

	b.Toggle(h, day)
	if b.Completed(h, day) {
		t.Error("toggle should flip committed true to staged false")
	}

	b.Toggle(h, day)
	if !b.Completed(h, day) {
		t.Error("second toggle should flip back to true")
	}
}

func TestToggleSub(t *testing.T) {
	b := NewBuffer()
	h := workoutHabit(nil)
	sub := h.SubHabits[0]

	b.ToggleSub(sub, day)
	if !b.SubCompleted(sub, day) {
		t.Error("sub toggle should stage true from committed false")
	}
	if got := b.ParentCompletion(h, day); got != constants.CompletionPartial {
		t.Errorf("rollup after single sub toggle = %v, want partial", got)
	}
}
