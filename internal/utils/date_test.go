package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-08-15"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "08/15/2026", "2026-8-15", "2026-13-01"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDaysInRange(t *testing.T) {
	start := time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	days := DaysInRange(start, end)
	want := []string{"2026-02-26", "2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d: %v", len(want), len(days), days)
	}
	for i, w := range want {
		if days[i] != w {
			t.Errorf("days[%d] = %s, want %s", i, days[i], w)
		}
	}

	// Single-day range
	days = DaysInRange(start, start)
	if len(days) != 1 || days[0] != "2026-02-26" {
		t.Errorf("single-day range: %v", days)
	}

	// Inverted range yields nothing
	if days := DaysInRange(end, start); days != nil {
		t.Errorf("inverted range should be nil, got %v", days)
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC))
	if FormatDate(start) != "2026-02-01" {
		t.Errorf("month start = %s", FormatDate(start))
	}
	if FormatDate(end) != "2026-02-28" {
		t.Errorf("month end = %s", FormatDate(end))
	}

	// Leap year February
	_, end = MonthRange(time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC))
	if FormatDate(end) != "2028-02-29" {
		t.Errorf("leap month end = %s", FormatDate(end))
	}
}

func TestYearRange(t *testing.T) {
	start, end := YearRange(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))
	if FormatDate(start) != "2026-01-01" || FormatDate(end) != "2026-12-31" {
		t.Errorf("year range = %s..%s", FormatDate(start), FormatDate(end))
	}
	if len(DaysInRange(start, end)) != 365 {
		t.Errorf("expected 365 days in 2026, got %d", len(DaysInRange(start, end)))
	}
}
