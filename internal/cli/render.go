package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/garden/internal/constants"
	"github.com/julianstephens/garden/internal/habit"
)

var (
	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	partialStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	noneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	subStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// CompletionMarker renders a tri-state rollup as a colored checkbox cell.
func CompletionMarker(state constants.CompletionState) string {
	switch state {
	case constants.CompletionComplete:
		return completeStyle.Render("[x]")
	case constants.CompletionPartial:
		return partialStyle.Render("[~]")
	default:
		return noneStyle.Render("[ ]")
	}
}

// LeafMarker renders a plain completed/not-completed cell.
func LeafMarker(done bool) string {
	if done {
		return completeStyle.Render("[x]")
	}
	return noneStyle.Render("[ ]")
}

// HabitLabel renders a habit name, tinted red for negative habits.
func HabitLabel(name string, isNegative bool) string {
	if isNegative {
		return negativeStyle.Render(name)
	}
	return name
}

// DivergingBar renders one day's positive/negative rates as two bars
// growing away from a center baseline: negative to the left, positive to
// the right. Each half is halfWidth cells.
func DivergingBar(r habit.DayRate, halfWidth int) string {
	pos := int(r.PositiveRate/100*float64(halfWidth) + 0.5)
	neg := int(r.NegativeRate/100*float64(halfWidth) + 0.5)

	left := strings.Repeat(" ", halfWidth-neg) + negativeStyle.Render(strings.Repeat("█", neg))
	right := completeStyle.Render(strings.Repeat("█", pos)) + strings.Repeat(" ", halfWidth-pos)

	return fmt.Sprintf("%s|%s", left, right)
}

// PadName truncates or pads a name to width.
func PadName(name string, width int) string {
	if len(name) > width {
		if width >= 4 {
			return name[:width-3] + "..."
		}
		return name[:width]
	}
	return name + strings.Repeat(" ", width-len(name))
}
