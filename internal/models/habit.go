package models

import (
	"strings"
	"time"

	"github.com/julianstephens/garden/internal/constants"
	"github.com/julianstephens/garden/internal/errors"
)

// SubHabit is a one-level-deep child of a parent habit. It carries its own
// completion log but structurally cannot own children, so a "parent of a
// parent" cannot be constructed.
type SubHabit struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Color       string              `json:"color"`
	Frequency   constants.Frequency `json:"frequency"`
	GoalPerWeek int                 `json:"goal_per_week,omitempty"`
	IsNegative  bool                `json:"is_negative"`
	ParentID    string              `json:"parent_id"`
	OrderIndex  int                 `json:"order_index"`
	CreatedAt   time.Time           `json:"created_at"`
	Logs        map[string]bool     `json:"logs,omitempty"` // date (YYYY-MM-DD) -> completed
}

// Habit is a parent-level habit. Its own Logs entry and its sub-habits'
// entries are tracked independently.
type Habit struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Color       string              `json:"color"`
	Frequency   constants.Frequency `json:"frequency"`
	GoalPerWeek int                 `json:"goal_per_week,omitempty"`
	IsNegative  bool                `json:"is_negative"`
	OrderIndex  int                 `json:"order_index"`
	CreatedAt   time.Time           `json:"created_at"`
	Logs        map[string]bool     `json:"logs,omitempty"`
	SubHabits   []SubHabit          `json:"sub_habits,omitempty"`
}

// HabitRecord is the flat persisted form of a habit row, before the
// parent/child tree is assembled.
type HabitRecord struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Color       string              `json:"color"`
	Frequency   constants.Frequency `json:"frequency"`
	GoalPerWeek int                 `json:"goal_per_week,omitempty"`
	IsNegative  bool                `json:"is_negative"`
	ParentID    string              `json:"parent_id,omitempty"`
	OrderIndex  int                 `json:"order_index"`
	CreatedAt   time.Time           `json:"created_at"`
}

// HabitLog is the persisted completion row. Existence means "completed on
// that date"; there is no explicit false state.
type HabitLog struct {
	ID            string `json:"id"`
	HabitID       string `json:"habit_id"`
	DateCompleted string `json:"date_completed"` // YYYY-MM-DD
}

// PendingLog is an uncommitted, session-local intent to set or clear a
// completion entry.
type PendingLog struct {
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
}

// NewHabit holds the fields accepted when creating a habit. ParentID, when
// set, must reference an existing parent-level habit.
type NewHabit struct {
	Name        string
	Color       string
	Frequency   constants.Frequency
	GoalPerWeek int
	IsNegative  bool
	ParentID    string
}

// Validate rejects invalid creation input before any backend call and fills
// in defaults (color, frequency, weekly goal).
func (n *NewHabit) Validate() error {
	n.Name = strings.TrimSpace(n.Name)
	if n.Name == "" {
		return errors.Validationf("habit name cannot be empty")
	}
	if n.Color == "" {
		n.Color = constants.DefaultHabitColor
	}
	if n.Frequency == "" {
		n.Frequency = constants.FrequencyDaily
	}
	if !n.Frequency.Valid() {
		return errors.Validationf("unknown frequency %q", n.Frequency)
	}
	if n.Frequency == constants.FrequencyWeekly {
		if n.GoalPerWeek < 0 {
			return errors.Validationf("goal per week must be positive")
		}
		if n.GoalPerWeek == 0 {
			n.GoalPerWeek = constants.DefaultGoalPerWeek
		}
	} else {
		// goal is only meaningful for weekly habits
		n.GoalPerWeek = 0
	}
	return nil
}

// HabitUpdate is a partial update; nil fields are left untouched.
type HabitUpdate struct {
	Name        *string
	Color       *string
	Frequency   *constants.Frequency
	GoalPerWeek *int
	IsNegative  *bool
}

// Validate rejects invalid patch input.
func (u HabitUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errors.Validationf("habit name cannot be empty")
	}
	if u.Frequency != nil && !u.Frequency.Valid() {
		return errors.Validationf("unknown frequency %q", *u.Frequency)
	}
	if u.GoalPerWeek != nil && *u.GoalPerWeek < 0 {
		return errors.Validationf("goal per week must be positive")
	}
	return nil
}

// Empty reports whether the patch carries no changes.
func (u HabitUpdate) Empty() bool {
	return u.Name == nil && u.Color == nil && u.Frequency == nil &&
		u.GoalPerWeek == nil && u.IsNegative == nil
}
