package storage

import (
	"encoding/json"
	"sort"

	"github.com/julianstephens/garden/internal/constants"
	"github.com/julianstephens/garden/internal/errors"
	"github.com/julianstephens/garden/internal/models"
)

// BuildHabitTree assembles the display tree from flat habit rows and log
// rows: parent habits ordered by order_index (ties by creation time), each
// with its sub-habits attached and a non-nil logs map merged in. Rows whose
// parent_id references a missing habit are orphans and are not surfaced.
func BuildHabitTree(records []models.HabitRecord, logs []models.HabitLog) []models.Habit {
	sorted := make([]models.HabitRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OrderIndex != sorted[j].OrderIndex {
			return sorted[i].OrderIndex < sorted[j].OrderIndex
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	logsByHabit := make(map[string]map[string]bool)
	for _, log := range logs {
		if logsByHabit[log.HabitID] == nil {
			logsByHabit[log.HabitID] = make(map[string]bool)
		}
		logsByHabit[log.HabitID][log.DateCompleted] = true
	}
	logsFor := func(id string) map[string]bool {
		if m := logsByHabit[id]; m != nil {
			return m
		}
		return make(map[string]bool)
	}

	childrenByParent := make(map[string][]models.SubHabit)
	for _, r := range sorted {
		if r.ParentID == "" {
			continue
		}
		childrenByParent[r.ParentID] = append(childrenByParent[r.ParentID], models.SubHabit{
			ID:          r.ID,
			Name:        r.Name,
			Color:       r.Color,
			Frequency:   r.Frequency,
			GoalPerWeek: r.GoalPerWeek,
			IsNegative:  r.IsNegative,
			ParentID:    r.ParentID,
			OrderIndex:  r.OrderIndex,
			CreatedAt:   r.CreatedAt,
			Logs:        logsFor(r.ID),
		})
	}

	var habits []models.Habit
	for _, r := range sorted {
		if r.ParentID != "" {
			continue
		}
		habits = append(habits, models.Habit{
			ID:          r.ID,
			Name:        r.Name,
			Color:       r.Color,
			Frequency:   r.Frequency,
			GoalPerWeek: r.GoalPerWeek,
			IsNegative:  r.IsNegative,
			OrderIndex:  r.OrderIndex,
			CreatedAt:   r.CreatedAt,
			Logs:        logsFor(r.ID),
			SubHabits:   childrenByParent[r.ID],
		})
	}
	return habits
}

// HabitFromRecord converts a flat row into the habit shape returned from
// add/update calls, without logs or children attached.
func HabitFromRecord(r models.HabitRecord) models.Habit {
	return models.Habit{
		ID:          r.ID,
		Name:        r.Name,
		Color:       r.Color,
		Frequency:   r.Frequency,
		GoalPerWeek: r.GoalPerWeek,
		IsNegative:  r.IsNegative,
		OrderIndex:  r.OrderIndex,
		CreatedAt:   r.CreatedAt,
		Logs:        make(map[string]bool),
	}
}

// ApplyHabitUpdate applies non-nil patch fields to a record. The frequency
// transition rules mirror creation: switching to weekly without a stored
// goal defaults it, switching to daily clears it.
func ApplyHabitUpdate(r *models.HabitRecord, upd models.HabitUpdate) {
	if upd.Name != nil {
		r.Name = *upd.Name
	}
	if upd.Color != nil {
		r.Color = *upd.Color
	}
	if upd.Frequency != nil {
		r.Frequency = *upd.Frequency
	}
	if upd.GoalPerWeek != nil {
		r.GoalPerWeek = *upd.GoalPerWeek
	}
	if upd.IsNegative != nil {
		r.IsNegative = *upd.IsNegative
	}
	if r.Frequency == constants.FrequencyWeekly {
		if r.GoalPerWeek == 0 {
			r.GoalPerWeek = constants.DefaultGoalPerWeek
		}
	} else {
		r.GoalPerWeek = 0
	}
}

// ApplyPageUpdate applies non-nil patch fields to a page.
func ApplyPageUpdate(p *models.Page, upd models.PageUpdate) {
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Slug != nil {
		p.Slug = *upd.Slug
	}
	if upd.HeadingImage != nil {
		p.HeadingImage = *upd.HeadingImage
	}
	if upd.Body != nil {
		p.Body = *upd.Body
	}
	if upd.Excerpt != nil {
		p.Excerpt = *upd.Excerpt
	}
	if upd.Images != nil {
		p.Images = *upd.Images
	}
	if upd.IsFeatured != nil {
		p.IsFeatured = *upd.IsFeatured
	}
	if upd.ExternalURL != nil {
		p.ExternalURL = *upd.ExternalURL
	}
	if upd.Layout != nil {
		p.Layout = *upd.Layout
	}
	if upd.Published != nil {
		p.Published = *upd.Published
	}
}

// CurrentSong returns the current_song setting, or the default song when the
// setting has never been saved.
func CurrentSong(p Provider) (models.Song, error) {
	raw, err := p.GetSetting(constants.SettingCurrentSong)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return models.DefaultSong(), nil
		}
		return models.Song{}, err
	}
	var song models.Song
	if err := json.Unmarshal(raw, &song); err != nil {
		return models.Song{}, errors.Backendf(err, "decoding current_song setting")
	}
	return song, nil
}

// SetCurrentSong stores the current_song setting.
func SetCurrentSong(p Provider, song models.Song) error {
	raw, err := json.Marshal(song)
	if err != nil {
		return errors.Backendf(err, "encoding current_song setting")
	}
	return p.SetSetting(constants.SettingCurrentSong, raw)
}
