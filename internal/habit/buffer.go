package habit

import (
	"fmt"
	"sort"

	"github.com/julianstephens/garden/internal/errors"
	"github.com/julianstephens/garden/internal/logger"
	"github.com/julianstephens/garden/internal/models"
)

// Key identifies one staged completion toggle. It is a structured composite
// key: habit ids are opaque and may contain dashes, so the id and date are
// never concatenated into a single string.
type Key struct {
	HabitID string
	Date    string // YYYY-MM-DD
}

// LogWriter is the slice of the storage provider the buffer needs to flush
// staged entries.
type LogWriter interface {
	UpsertHabitLog(habitID, date string) error
	DeleteHabitLog(habitID, date string) error
}

// Buffer is a session-scoped staging area for unsaved completion toggles.
// Entries accumulate in memory and flush to the store in one batch, so a
// user can flip many checkboxes per round trip. Not safe for concurrent use.
type Buffer struct {
	entries map[Key]bool
}

// NewBuffer returns an empty pending-log buffer.
func NewBuffer() *Buffer {
	return &Buffer{entries: make(map[Key]bool)}
}

// Stage records an intent to set or clear the log entry for (habitID, date).
// A later stage for the same key overwrites an earlier one. Never touches
// the store.
func (b *Buffer) Stage(habitID, date string, completed bool) {
	b.entries[Key{HabitID: habitID, Date: date}] = completed
}

// Resolve returns the staged value for (habitID, date) if present, else
// fallback (the committed value from the store).
func (b *Buffer) Resolve(habitID, date string, fallback bool) bool {
	if v, ok := b.entries[Key{HabitID: habitID, Date: date}]; ok {
		return v
	}
	return fallback
}

// Len returns the count of staged entries.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Pending returns the staged entries in deterministic order.
func (b *Buffer) Pending() []models.PendingLog {
	keys := make([]Key, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].HabitID != keys[j].HabitID {
			return keys[i].HabitID < keys[j].HabitID
		}
		return keys[i].Date < keys[j].Date
	})

	logs := make([]models.PendingLog, 0, len(keys))
	for _, k := range keys {
		logs = append(logs, models.PendingLog{
			HabitID:   k.HabitID,
			Date:      k.Date,
			Completed: b.entries[k],
		})
	}
	return logs
}

// Reset discards all staged entries.
func (b *Buffer) Reset() {
	b.entries = make(map[Key]bool)
}

// CommitResult reports the outcome of a batched flush.
type CommitResult struct {
	Applied int
	Failed  []models.PendingLog
}

// Commit flushes every staged entry against the store: an upsert when the
// entry is completed, a delete otherwise. Entries are not atomic across the
// batch; each failure is collected and the remaining entries are still
// attempted. Applied entries leave the buffer, failed entries stay staged
// so a later commit can retry them.
func (b *Buffer) Commit(store LogWriter) (CommitResult, error) {
	var res CommitResult

	for _, entry := range b.Pending() {
		var err error
		if entry.Completed {
			err = store.UpsertHabitLog(entry.HabitID, entry.Date)
		} else {
			err = store.DeleteHabitLog(entry.HabitID, entry.Date)
		}
		if err != nil {
			logger.Error("Failed to commit pending log",
				"habit", entry.HabitID, "date", entry.Date, "completed", entry.Completed, "error", err)
			res.Failed = append(res.Failed, entry)
			continue
		}
		res.Applied++
		delete(b.entries, Key{HabitID: entry.HabitID, Date: entry.Date})
	}

	if len(res.Failed) > 0 {
		return res, fmt.Errorf("%w: %d of %d pending logs failed to commit",
			errors.ErrBackend, len(res.Failed), res.Applied+len(res.Failed))
	}
	return res, nil
}
