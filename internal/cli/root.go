package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/garden/internal/models"
	"github.com/julianstephens/garden/internal/storage"
	"github.com/julianstephens/garden/internal/utils"
)

type Context struct {
	Store storage.Provider
}

// ResolveDate returns today when s is empty, otherwise validates s.
func ResolveDate(s string) (string, error) {
	if s == "" {
		return utils.Today(), nil
	}
	if _, err := utils.ParseDate(s); err != nil {
		return "", err
	}
	return s, nil
}

// FindHabit looks up a parent-level habit by name (case-insensitive).
func FindHabit(habits []models.Habit, name string) (models.Habit, error) {
	for _, h := range habits {
		if strings.EqualFold(h.Name, name) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", name)
}

// FindSubHabit looks up a sub-habit by name across all parents.
func FindSubHabit(habits []models.Habit, name string) (models.Habit, models.SubHabit, error) {
	for _, h := range habits {
		for _, sub := range h.SubHabits {
			if strings.EqualFold(sub.Name, name) {
				return h, sub, nil
			}
		}
	}
	return models.Habit{}, models.SubHabit{}, fmt.Errorf("sub-habit %q not found", name)
}
