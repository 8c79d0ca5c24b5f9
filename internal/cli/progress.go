package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/garden/internal/habit"
	"github.com/julianstephens/garden/internal/models"
	"github.com/julianstephens/garden/internal/utils"
)

type ProgressCmd struct {
	Month string `help:"Month to chart (YYYY-MM, default: current month)." xor:"window"`
	Year  string `help:"Year to chart (YYYY)." xor:"window"`
	Date  string `help:"Show the completion breakdown for a single date (YYYY-MM-DD)." xor:"window"`
}

func (c *ProgressCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	if c.Date != "" {
		return c.breakdown(habits)
	}

	start, end, label, err := c.window()
	if err != nil {
		return err
	}

	rates := habit.DailyRates(habits, start, end)

	const halfWidth = 20
	fmt.Printf("Progress for %s\n\n", label)
	fmt.Printf("%-11s %s %s\n", "", headerStyle.Render(fmt.Sprintf("%*s", halfWidth, "avoid")),
		headerStyle.Render("do"))
	for _, r := range rates {
		fmt.Printf("%-11s %s do %5.1f%%, avoid %5.1f%%\n",
			r.Date, DivergingBar(r, halfWidth), r.PositiveRate, r.NegativeRate)
	}
	return nil
}

func (c *ProgressCmd) window() (time.Time, time.Time, string, error) {
	if c.Year != "" {
		t, err := time.Parse("2006", c.Year)
		if err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("invalid year %q (expected YYYY)", c.Year)
		}
		start, end := utils.YearRange(t)
		return start, end, c.Year, nil
	}

	month := c.Month
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
	}
	start, end := utils.MonthRange(t)
	return start, end, month, nil
}

func (c *ProgressCmd) breakdown(habits []models.Habit) error {
	if _, err := utils.ParseDate(c.Date); err != nil {
		return err
	}

	entries := habit.Breakdown(habits, c.Date)
	if len(entries) == 0 {
		fmt.Printf("Nothing completed on %s.\n", c.Date)
		return nil
	}

	fmt.Printf("Completed on %s:\n", c.Date)
	for _, e := range entries {
		name := HabitLabel(e.Name, e.IsNegative)
		if e.IsSubHabit {
			fmt.Printf("  %s\n", subStyle.Render(e.Name))
		} else {
			fmt.Printf("%s\n", name)
		}
	}
	return nil
}
