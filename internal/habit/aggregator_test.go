package habit

import (
	"testing"
	"time"

	"github.com/julianstephens/garden/internal/models"
)

func TestCompletedForDateCountsOwnLogAndSubs(t *testing.T) {
	date := "2026-08-15"

	tests := []struct {
		name  string
		habit models.Habit
		want  bool
	}{
		{
			name:  "no logs anywhere",
			habit: workoutHabit(nil),
			want:  false,
		},
		{
			name: "own log only",
			habit: models.Habit{
				ID:   "workout",
				Logs: map[string]bool{date: true},
				SubHabits: []models.SubHabit{
					{ID: "warmup", Logs: map[string]bool{}},
				},
			},
			want: true,
		},
		{
			name:  "single sub-habit log only",
			habit: workoutHabit(map[string]bool{"cardio": true}),
			want:  true,
		},
		{
			name:  "leaf habit with log",
			habit: models.Habit{ID: "water", Logs: map[string]bool{date: true}},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletedForDate(tt.habit, date); got != tt.want {
				t.Errorf("CompletedForDate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDailyRatesPartitionsByPolarity(t *testing.T) {
	d1 := "2026-08-01"
	d2 := "2026-08-02"

	habits := []models.Habit{
		{ID: "p1", Logs: map[string]bool{d1: true}},
		{ID: "p2", Logs: map[string]bool{}},
		{ID: "n1", IsNegative: true, Logs: map[string]bool{d1: true, d2: true}},
	}

	start, _ := time.Parse("2006-01-02", d1)
	end, _ := time.Parse("2006-01-02", d2)
	rates := DailyRates(habits, start, end)

	if len(rates) != 2 {
		t.Fatalf("expected 2 day rates, got %d", len(rates))
	}

	// Day 1: 1 of 2 positive, 1 of 1 negative
	if rates[0].Date != d1 || rates[0].PositiveRate != 50 || rates[0].NegativeRate != 100 {
		t.Errorf("day 1 = %+v, want 50%% positive / 100%% negative", rates[0])
	}
	// Day 2: 0 of 2 positive, 1 of 1 negative
	if rates[1].PositiveRate != 0 || rates[1].NegativeRate != 100 {
		t.Errorf("day 2 = %+v, want 0%% positive / 100%% negative", rates[1])
	}
}

func TestDailyRatesSubHabitsNeverCountInDenominator(t *testing.T) {
	// One positive parent with three subs, one sub done: parent counts
	// complete and the denominator is 1, not 4.
	habits := []models.Habit{workoutHabit(map[string]bool{"warmup": true})}

	start, _ := time.Parse("2006-01-02", day)
	rates := DailyRates(habits, start, start)
	if len(rates) != 1 {
		t.Fatalf("expected 1 day rate, got %d", len(rates))
	}
	if rates[0].PositiveRate != 100 {
		t.Errorf("positive rate = %v, want 100", rates[0].PositiveRate)
	}
}

func TestDailyRatesEmptySets(t *testing.T) {
	date := "2026-08-01"
	start, _ := time.Parse("2006-01-02", date)

	// No negative habits at all: negative rate is 0, not NaN
	habits := []models.Habit{{ID: "p1", Logs: map[string]bool{date: true}}}
	rates := DailyRates(habits, start, start)
	if rates[0].NegativeRate != 0 {
		t.Errorf("negative rate with no negative habits = %v, want 0", rates[0].NegativeRate)
	}
	if rates[0].PositiveRate != 100 {
		t.Errorf("positive rate = %v, want 100", rates[0].PositiveRate)
	}

	// No habits at all
	rates = DailyRates(nil, start, start)
	if rates[0].PositiveRate != 0 || rates[0].NegativeRate != 0 {
		t.Errorf("rates with no habits = %+v, want 0/0", rates[0])
	}
}

func TestDailyRatesBothAxesIndependent(t *testing.T) {
	date := "2026-08-01"
	start, _ := time.Parse("2006-01-02", date)

	// Every positive and every negative habit complete on the same day:
	// both rates hit 100 independently.
	habits := []models.Habit{
		{ID: "p1", Logs: map[string]bool{date: true}},
		{ID: "n1", IsNegative: true, Logs: map[string]bool{date: true}},
		{ID: "n2", IsNegative: true, Logs: map[string]bool{date: true}},
	}
	rates := DailyRates(habits, start, start)
	if rates[0].PositiveRate != 100 || rates[0].NegativeRate != 100 {
		t.Errorf("rates = %+v, want 100/100", rates[0])
	}
}

func TestBreakdownFlattensParentsAndSubs(t *testing.T) {
	date := "2026-08-15"

	h1 := workoutHabit(map[string]bool{"warmup": true, "weights": true})
	h1.Logs[date] = true
	h2 := models.Habit{ID: "smoke", Name: "Smoking", IsNegative: true, Logs: map[string]bool{date: true}}
	h3 := models.Habit{ID: "read", Name: "Read", Logs: map[string]bool{}}

	entries := Breakdown([]models.Habit{h1, h2, h3}, date)
	if len(entries) != 4 {
		t.Fatalf("expected 4 breakdown entries, got %d", len(entries))
	}

	// Parent precedes its sub-habits, habits stay in display order
	if entries[0].ID != "workout" || entries[0].IsSubHabit {
		t.Errorf("entries[0] = %+v, want parent workout", entries[0])
	}
	if entries[1].ID != "warmup" || !entries[1].IsSubHabit {
		t.Errorf("entries[1] = %+v, want sub warmup", entries[1])
	}
	if entries[2].ID != "weights" || !entries[2].IsSubHabit {
		t.Errorf("entries[2] = %+v, want sub weights", entries[2])
	}
	if entries[3].ID != "smoke" || !entries[3].IsNegative {
		t.Errorf("entries[3] = %+v, want negative smoke", entries[3])
	}
}

func TestBreakdownSubOnlyWhenParentUnlogged(t *testing.T) {
	date := "2026-08-15"
	h := workoutHabit(map[string]bool{"cardio": true})

	entries := Breakdown([]models.Habit{h}, date)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID != "cardio" || !entries[0].IsSubHabit {
		t.Errorf("entries[0] = %+v, want sub cardio only", entries[0])
	}
}
