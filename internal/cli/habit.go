package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/garden/internal/constants"
	"github.com/julianstephens/garden/internal/habit"
	"github.com/julianstephens/garden/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit or sub-habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with their sub-habits."`
	Update HabitUpdateCmd `cmd:"" help:"Update a habit's fields."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Move   HabitMoveCmd   `cmd:"" help:"Reorder a habit among its siblings."`
	Mark   HabitMarkCmd   `cmd:"" help:"Toggle habits complete for a day."`
	Status HabitStatusCmd `cmd:"" help:"Show the completion matrix."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Color     string `help:"Accent color (hex)." default:""`
	Frequency string `help:"daily or weekly." default:"daily"`
	Goal      int    `help:"Times per week (weekly habits only)." default:"0"`
	Negative  bool   `help:"Track as a habit to avoid."`
	Parent    string `help:"Parent habit name to nest under." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	n := models.NewHabit{
		Name:        c.Name,
		Color:       c.Color,
		Frequency:   constants.Frequency(c.Frequency),
		GoalPerWeek: c.Goal,
		IsNegative:  c.Negative,
	}

	if c.Parent != "" {
		habits, err := ctx.Store.GetHabits()
		if err != nil {
			return err
		}
		parent, err := FindHabit(habits, c.Parent)
		if err != nil {
			return err
		}
		n.ParentID = parent.ID
	}

	created, err := ctx.Store.AddHabit(n)
	if err != nil {
		return err
	}

	if c.Parent != "" {
		fmt.Printf("Added sub-habit %q under %q\n", created.Name, c.Parent)
	} else {
		fmt.Printf("Added habit: %s\n", created.Name)
	}
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		freq := string(h.Frequency)
		if h.Frequency == constants.FrequencyWeekly {
			freq = fmt.Sprintf("weekly, %dx", h.GoalPerWeek)
		}
		fmt.Printf("%s (%s)\n", HabitLabel(h.Name, h.IsNegative), freq)
		for _, sub := range h.SubHabits {
			fmt.Printf("  %s\n", subStyle.Render(sub.Name))
		}
	}
	return nil
}

type HabitUpdateCmd struct {
	Name      string  `arg:"" help:"Habit name to update."`
	Rename    *string `help:"New name."`
	Color     *string `help:"New accent color (hex)."`
	Frequency *string `help:"daily or weekly."`
	Goal      *int    `help:"Times per week (weekly habits only)."`
	Negative  *bool   `help:"Track as a habit to avoid."`
}

func (c *HabitUpdateCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	id, err := findAnyHabitID(habits, c.Name)
	if err != nil {
		return err
	}

	upd := models.HabitUpdate{
		Name:        c.Rename,
		Color:       c.Color,
		GoalPerWeek: c.Goal,
		IsNegative:  c.Negative,
	}
	if c.Frequency != nil {
		f := constants.Frequency(*c.Frequency)
		upd.Frequency = &f
	}
	if upd.Empty() {
		return fmt.Errorf("nothing to update: pass at least one of --rename, --color, --frequency, --goal, --negative")
	}

	updated, err := ctx.Store.UpdateHabit(id, upd)
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	if h, err := FindHabit(habits, c.Name); err == nil {
		if len(h.SubHabits) > 0 {
			fmt.Printf("Warning: %q has %d sub-habits; they will remain but no longer appear in listings.\n",
				h.Name, len(h.SubHabits))
		}
		if err := ctx.Store.DeleteHabit(h.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted habit: %s\n", h.Name)
		return nil
	}

	_, sub, err := FindSubHabit(habits, c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}
	if err := ctx.Store.DeleteHabit(sub.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted sub-habit: %s\n", sub.Name)
	return nil
}

type HabitMoveCmd struct {
	Name string `arg:"" help:"Habit name to move."`
	Up   bool   `help:"Move up (towards the front)." xor:"dir" required:""`
	Down bool   `help:"Move down (towards the back)." xor:"dir" required:""`
}

func (c *HabitMoveCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	id, err := findAnyHabitID(habits, c.Name)
	if err != nil {
		return err
	}

	if c.Up {
		err = ctx.Store.MoveHabitUp(id)
	} else {
		err = ctx.Store.MoveHabitDown(id)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Moved habit: %s\n", c.Name)
	return nil
}

type HabitMarkCmd struct {
	Names []string `arg:"" help:"Habit names to toggle."`
	Date  string   `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	buf := habit.NewBuffer()
	for _, name := range c.Names {
		if h, err := FindHabit(habits, name); err == nil {
			buf.Toggle(h, date)
			continue
		}
		_, sub, err := FindSubHabit(habits, name)
		if err != nil {
			return fmt.Errorf("habit %q not found", name)
		}
		buf.ToggleSub(sub, date)
	}

	if buf.Len() == 0 {
		fmt.Println("Nothing to record.")
		return nil
	}

	res, err := buf.Commit(ctx.Store)
	if res.Applied > 0 {
		fmt.Printf("Recorded %d change(s) for %s\n", res.Applied, date)
	}
	if err != nil {
		for _, f := range res.Failed {
			fmt.Printf("  failed: habit %s on %s\n", f.HabitID, f.Date)
		}
		return err
	}
	return nil
}

type HabitStatusCmd struct {
	Days int    `help:"Number of days to show." default:"7"`
	Date string `help:"Last date of the window (default: today)." default:""`
}

func (c *HabitStatusCmd) Run(ctx *Context) error {
	endDate, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	end, _ := time.Parse(constants.DateFormat, endDate)
	start := end.AddDate(0, 0, -(c.Days - 1))

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	const nameWidth = 20
	buf := habit.NewBuffer()

	fmt.Print(headerStyle.Render(PadName("Habit", nameWidth)))
	for i := 0; i < c.Days; i++ {
		day := start.AddDate(0, 0, i)
		fmt.Printf(" %5s", day.Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", nameWidth+6*c.Days))

	for _, h := range habits {
		fmt.Print(PadName(HabitLabel(h.Name, h.IsNegative), nameWidth+labelOverhead(h)))
		for i := 0; i < c.Days; i++ {
			date := start.AddDate(0, 0, i).Format(constants.DateFormat)
			if len(h.SubHabits) > 0 {
				fmt.Printf("  %s  ", CompletionMarker(buf.ParentCompletion(h, date)))
			} else {
				fmt.Printf("  %s  ", LeafMarker(buf.Completed(h, date)))
			}
		}
		fmt.Println()

		for _, sub := range h.SubHabits {
			fmt.Print(PadName("  "+sub.Name, nameWidth))
			for i := 0; i < c.Days; i++ {
				date := start.AddDate(0, 0, i).Format(constants.DateFormat)
				fmt.Printf("  %s  ", LeafMarker(buf.SubCompleted(sub, date)))
			}
			fmt.Println()
		}
	}
	return nil
}

// labelOverhead compensates PadName for the invisible ANSI escape bytes
// lipgloss adds around negative habit names.
func labelOverhead(h models.Habit) int {
	return len(HabitLabel(h.Name, h.IsNegative)) - len(h.Name)
}

func findAnyHabitID(habits []models.Habit, name string) (string, error) {
	if h, err := FindHabit(habits, name); err == nil {
		return h.ID, nil
	}
	if _, sub, err := FindSubHabit(habits, name); err == nil {
		return sub.ID, nil
	}
	return "", fmt.Errorf("habit %q not found", name)
}
