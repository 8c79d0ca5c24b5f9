package habit

import (
	"time"

	"github.com/julianstephens/garden/internal/models"
	"github.com/julianstephens/garden/internal/utils"
)

// The aggregator works over committed logs only; pending edits are not
// reflected until the buffer flushes.

// CompletedForDate reports whether a parent-level habit counts as complete
// for aggregation on date: its own log entry OR any sub-habit's entry. This
// is deliberately looser than the tri-state rollup, which ignores the
// parent's own entry; the two call sites disagree in the reference behavior
// and both are preserved.
func CompletedForDate(h models.Habit, date string) bool {
	if h.Logs[date] {
		return true
	}
	for _, sub := range h.SubHabits {
		if sub.Logs[date] {
			return true
		}
	}
	return false
}

// DayRate holds the two independent per-date percentages. They are never
// combined into one score; the UI draws them as diverging bars from a 50%
// baseline.
type DayRate struct {
	Date         string  `json:"date"`
	PositiveRate float64 `json:"positive_rate"` // [0,100]
	NegativeRate float64 `json:"negative_rate"` // [0,100]
}

// DailyRates computes, for every date from start through end inclusive, the
// completion rate of positive and negative parent-level habits. Sub-habits
// never count toward a denominator. An empty set yields a 0 rate.
func DailyRates(habits []models.Habit, start, end time.Time) []DayRate {
	var positive, negative []models.Habit
	for _, h := range habits {
		if h.IsNegative {
			negative = append(negative, h)
		} else {
			positive = append(positive, h)
		}
	}

	days := utils.DaysInRange(start, end)
	rates := make([]DayRate, 0, len(days))
	for _, date := range days {
		rates = append(rates, DayRate{
			Date:         date,
			PositiveRate: rate(positive, date),
			NegativeRate: rate(negative, date),
		})
	}
	return rates
}

func rate(set []models.Habit, date string) float64 {
	if len(set) == 0 {
		return 0
	}
	completed := 0
	for _, h := range set {
		if CompletedForDate(h, date) {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(set))
}

// BreakdownEntry is one habit or sub-habit individually marked complete on a
// date, for tooltip/detail display.
type BreakdownEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	IsNegative bool   `json:"is_negative"`
	IsSubHabit bool   `json:"is_sub_habit"`
}

// Breakdown flattens every habit and sub-habit with its own committed log
// entry on date, in display order, parents before their children.
func Breakdown(habits []models.Habit, date string) []BreakdownEntry {
	var entries []BreakdownEntry
	for _, h := range habits {
		if h.Logs[date] {
			entries = append(entries, BreakdownEntry{
				ID:         h.ID,
				Name:       h.Name,
				Color:      h.Color,
				IsNegative: h.IsNegative,
			})
		}
		for _, sub := range h.SubHabits {
			if sub.Logs[date] {
				entries = append(entries, BreakdownEntry{
					ID:         sub.ID,
					Name:       sub.Name,
					Color:      sub.Color,
					IsNegative: sub.IsNegative,
					IsSubHabit: true,
				})
			}
		}
	}
	return entries
}
