package habit

import (
	"github.com/julianstephens/garden/internal/constants"
	"github.com/julianstephens/garden/internal/models"
)

// Completion resolution blends the store's committed logs with the session's
// pending buffer. All functions here are pure reads over both; only the
// Toggle* functions mutate, and they mutate the buffer alone.

// Completed reports whether a parent habit's own log entry is set for date,
// staged value winning over the committed one.
func (b *Buffer) Completed(h models.Habit, date string) bool {
	return b.Resolve(h.ID, date, h.Logs[date])
}

// SubCompleted reports whether a sub-habit is complete for date, staged
// value winning over the committed one.
func (b *Buffer) SubCompleted(s models.SubHabit, date string) bool {
	return b.Resolve(s.ID, date, s.Logs[date])
}

// ParentCompletion computes the tri-state rollup for a habit on date. For a
// habit with sub-habits only the sub-habits drive the state; the parent's
// own log entry is ignored. A habit without sub-habits is COMPLETE iff its
// own entry resolves true.
func (b *Buffer) ParentCompletion(h models.Habit, date string) constants.CompletionState {
	if len(h.SubHabits) == 0 {
		if b.Completed(h, date) {
			return constants.CompletionComplete
		}
		return constants.CompletionNone
	}

	completed := 0
	for _, sub := range h.SubHabits {
		if b.SubCompleted(sub, date) {
			completed++
		}
	}
	switch completed {
	case 0:
		return constants.CompletionNone
	case len(h.SubHabits):
		return constants.CompletionComplete
	default:
		return constants.CompletionPartial
	}
}

// Toggle stages a completion flip for a habit on date. For a habit with
// sub-habits every sub-habit is staged to the same new value, the negation
// of "all sub-habits currently complete"; the parent's own entry is left
// untouched. For a habit without sub-habits its own entry is flipped.
func (b *Buffer) Toggle(h models.Habit, date string) {
	if len(h.SubHabits) > 0 {
		all := true
		for _, sub := range h.SubHabits {
			if !b.SubCompleted(sub, date) {
				all = false
				break
			}
		}
		for _, sub := range h.SubHabits {
			b.Stage(sub.ID, date, !all)
		}
		return
	}
	b.Stage(h.ID, date, !b.Completed(h, date))
}

// ToggleSub stages a completion flip for a single sub-habit on date.
func (b *Buffer) ToggleSub(s models.SubHabit, date string) {
	b.Stage(s.ID, date, !b.SubCompleted(s, date))
}
