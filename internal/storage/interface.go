package storage

import (
	"encoding/json"

	"github.com/julianstephens/garden/internal/models"
)

// Provider is the single storage boundary. One implementation is selected at
// startup (Postgres remote, SQLite local, or the JSON document fallback) and
// every data-access path goes through it; nothing above this interface
// branches on which backend is configured.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	//
	// GetHabits returns parent habits in display order (order_index, ties
	// broken by creation time), each with its sub-habits attached and its
	// committed logs merged in.
	GetHabits() ([]models.Habit, error)
	AddHabit(n models.NewHabit) (models.Habit, error)
	UpdateHabit(id string, upd models.HabitUpdate) (models.Habit, error)
	// DeleteHabit removes exactly one habit row plus its own logs. Rows
	// whose parent_id equals id are left in place; sub-habits of a deleted
	// parent must be deleted individually.
	DeleteHabit(id string) error
	// MoveHabitUp and MoveHabitDown swap order_index with the adjacent
	// parent habit in the full ordered parent list. No-op when the habit is
	// already first/last or unknown.
	MoveHabitUp(id string) error
	MoveHabitDown(id string) error

	// Habit logs. Upsert and delete key on (habit_id, date_completed);
	// duplicate completion rows are never created.
	UpsertHabitLog(habitID, date string) error
	DeleteHabitLog(habitID, date string) error
	// GetHabitLogs returns logs within the inclusive date range; an empty
	// bound leaves that side open.
	GetHabitLogs(startDate, endDate string) ([]models.HabitLog, error)

	// Pages
	GetPages() ([]models.Page, error)
	GetFeaturedPages() ([]models.Page, error)
	GetNavPages() ([]models.Page, error)
	GetPageBySlug(slug string) (models.Page, error)
	AddPage(n models.NewPage) (models.Page, error)
	UpdatePage(id string, upd models.PageUpdate) (models.Page, error)
	DeletePage(id string) error

	// Notes
	GetNotes() ([]models.Note, error)
	AddNote(content string) (models.Note, error)
	DeleteNote(id string) error

	// Settings: free-form JSON values keyed by name, upsert on key.
	GetSetting(key string) (json.RawMessage, error)
	SetSetting(key string, value json.RawMessage) error

	// Utils
	GetConfigPath() string
}
