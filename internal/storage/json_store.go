package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/garden/internal/errors"
	"github.com/julianstephens/garden/internal/models"
)

// document is the whole garden persisted as one JSON file. This is the
// storage-free fallback used when no database is configured; it holds the
// same row shapes as the relational backends.
type document struct {
	Version   int                        `json:"version"`
	Habits    []models.HabitRecord       `json:"habits"`
	HabitLogs []models.HabitLog          `json:"habit_logs"`
	Pages     []models.Page              `json:"pages"`
	Notes     []models.Note              `json:"notes"`
	Settings  map[string]json.RawMessage `json:"settings"`
}

type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version:  1,
		Settings: make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'garden init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.doc.Settings == nil {
		s.doc.Settings = make(map[string]json.RawMessage)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

// --- Habits ---

func (s *JSONStore) GetHabits() ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return BuildHabitTree(s.doc.Habits, s.doc.HabitLogs), nil
}

func (s *JSONStore) AddHabit(n models.NewHabit) (models.Habit, error) {
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}
	if err := n.Validate(); err != nil {
		return models.Habit{}, err
	}

	maxOrder := 0
	for _, r := range s.doc.Habits {
		if r.OrderIndex > maxOrder {
			maxOrder = r.OrderIndex
		}
	}

	record := models.HabitRecord{
		ID:          uuid.New().String(),
		Name:        n.Name,
		Color:       n.Color,
		Frequency:   n.Frequency,
		GoalPerWeek: n.GoalPerWeek,
		IsNegative:  n.IsNegative,
		ParentID:    n.ParentID,
		OrderIndex:  maxOrder + 1,
		CreatedAt:   time.Now(),
	}
	s.doc.Habits = append(s.doc.Habits, record)

	if err := s.save(); err != nil {
		return models.Habit{}, errors.Backend(err)
	}
	return HabitFromRecord(record), nil
}

func (s *JSONStore) UpdateHabit(id string, upd models.HabitUpdate) (models.Habit, error) {
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}
	if err := upd.Validate(); err != nil {
		return models.Habit{}, err
	}

	for i := range s.doc.Habits {
		if s.doc.Habits[i].ID != id {
			continue
		}
		ApplyHabitUpdate(&s.doc.Habits[i], upd)
		if err := s.save(); err != nil {
			return models.Habit{}, errors.Backend(err)
		}
		return HabitFromRecord(s.doc.Habits[i]), nil
	}
	return models.Habit{}, errors.NotFoundf("habit %s", id)
}

// DeleteHabit removes one habit row and its own logs. Children of a deleted
// parent are intentionally left behind.
func (s *JSONStore) DeleteHabit(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	idx := -1
	for i, r := range s.doc.Habits {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errors.NotFoundf("habit %s", id)
	}

	s.doc.Habits = append(s.doc.Habits[:idx], s.doc.Habits[idx+1:]...)

	logs := s.doc.HabitLogs[:0]
	for _, log := range s.doc.HabitLogs {
		if log.HabitID != id {
			logs = append(logs, log)
		}
	}
	s.doc.HabitLogs = logs

	if err := s.save(); err != nil {
		return errors.Backend(err)
	}
	return nil
}

func (s *JSONStore) MoveHabitUp(id string) error {
	return s.moveHabit(id, -1)
}

func (s *JSONStore) MoveHabitDown(id string) error {
	return s.moveHabit(id, +1)
}

func (s *JSONStore) moveHabit(id string, delta int) error {
	if err := s.loaded(); err != nil {
		return err
	}

	// Adjacency over the full ordered parent list, never a filtered subset.
	type ref struct {
		idx   int
		order int
		at    time.Time
	}
	var parents []ref
	for i, r := range s.doc.Habits {
		if r.ParentID == "" {
			parents = append(parents, ref{idx: i, order: r.OrderIndex, at: r.CreatedAt})
		}
	}
	sort.SliceStable(parents, func(i, j int) bool {
		if parents[i].order != parents[j].order {
			return parents[i].order < parents[j].order
		}
		return parents[i].at.Before(parents[j].at)
	})

	pos := -1
	for i, p := range parents {
		if s.doc.Habits[p.idx].ID == id {
			pos = i
			break
		}
	}
	if pos == -1 {
		return nil
	}
	swap := pos + delta
	if swap < 0 || swap >= len(parents) {
		return nil
	}

	// Swap the stored order indices of the two rows.
	a, b := parents[pos].idx, parents[swap].idx
	s.doc.Habits[a].OrderIndex, s.doc.Habits[b].OrderIndex =
		s.doc.Habits[b].OrderIndex, s.doc.Habits[a].OrderIndex

	if err := s.save(); err != nil {
		return errors.Backend(err)
	}
	return nil
}

// --- Habit logs ---

func (s *JSONStore) UpsertHabitLog(habitID, date string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	for _, log := range s.doc.HabitLogs {
		if log.HabitID == habitID && log.DateCompleted == date {
			return nil
		}
	}
	s.doc.HabitLogs = append(s.doc.HabitLogs, models.HabitLog{
		ID:            uuid.New().String(),
		HabitID:       habitID,
		DateCompleted: date,
	})

	if err := s.save(); err != nil {
		return errors.Backend(err)
	}
	return nil
}

func (s *JSONStore) DeleteHabitLog(habitID, date string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	logs := s.doc.HabitLogs[:0]
	for _, log := range s.doc.HabitLogs {
		if log.HabitID == habitID && log.DateCompleted == date {
			continue
		}
		logs = append(logs, log)
	}
	s.doc.HabitLogs = logs

	if err := s.save(); err != nil {
		return errors.Backend(err)
	}
	return nil
}

func (s *JSONStore) GetHabitLogs(startDate, endDate string) ([]models.HabitLog, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var logs []models.HabitLog
	for _, log := range s.doc.HabitLogs {
		if startDate != "" && log.DateCompleted < startDate {
			continue
		}
		if endDate != "" && log.DateCompleted > endDate {
			continue
		}
		logs = append(logs, log)
	}
	return logs, nil
}

// --- Pages ---

func (s *JSONStore) pages(filter func(models.Page) bool) []models.Page {
	var pages []models.Page
	for _, p := range s.doc.Pages {
		if filter == nil || filter(p) {
			pages = append(pages, p)
		}
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].CreatedAt.After(pages[j].CreatedAt)
	})
	return pages
}

func (s *JSONStore) GetPages() ([]models.Page, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.pages(nil), nil
}

func (s *JSONStore) GetFeaturedPages() ([]models.Page, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.pages(func(p models.Page) bool { return p.IsFeatured && p.Published }), nil
}

func (s *JSONStore) GetNavPages() ([]models.Page, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.pages(func(p models.Page) bool { return !p.IsFeatured && p.Published }), nil
}

func (s *JSONStore) GetPageBySlug(slug string) (models.Page, error) {
	if err := s.loaded(); err != nil {
		return models.Page{}, err
	}
	for _, p := range s.doc.Pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Page{}, errors.NotFoundf("page with slug %q", slug)
}

func (s *JSONStore) AddPage(n models.NewPage) (models.Page, error) {
	if err := s.loaded(); err != nil {
		return models.Page{}, err
	}
	if err := n.Validate(); err != nil {
		return models.Page{}, err
	}

	now := time.Now()
	page := models.Page{
		ID:           uuid.New().String(),
		Title:        n.Title,
		Slug:         n.Slug,
		HeadingImage: n.HeadingImage,
		Body:         n.Body,
		Excerpt:      n.Excerpt,
		Images:       n.Images,
		IsFeatured:   n.IsFeatured,
		ExternalURL:  n.ExternalURL,
		Layout:       n.Layout,
		Published:    n.Published,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.doc.Pages = append(s.doc.Pages, page)

	if err := s.save(); err != nil {
		return models.Page{}, errors.Backend(err)
	}
	return page, nil
}

func (s *JSONStore) UpdatePage(id string, upd models.PageUpdate) (models.Page, error) {
	if err := s.loaded(); err != nil {
		return models.Page{}, err
	}
	if err := upd.Validate(); err != nil {
		return models.Page{}, err
	}

	for i := range s.doc.Pages {
		if s.doc.Pages[i].ID != id {
			continue
		}
		ApplyPageUpdate(&s.doc.Pages[i], upd)
		s.doc.Pages[i].UpdatedAt = time.Now()
		if err := s.save(); err != nil {
			return models.Page{}, errors.Backend(err)
		}
		return s.doc.Pages[i], nil
	}
	return models.Page{}, errors.NotFoundf("page %s", id)
}

func (s *JSONStore) DeletePage(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	for i, p := range s.doc.Pages {
		if p.ID == id {
			s.doc.Pages = append(s.doc.Pages[:i], s.doc.Pages[i+1:]...)
			if err := s.save(); err != nil {
				return errors.Backend(err)
			}
			return nil
		}
	}
	return errors.NotFoundf("page %s", id)
}

// --- Notes ---

func (s *JSONStore) GetNotes() ([]models.Note, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	notes := make([]models.Note, len(s.doc.Notes))
	copy(notes, s.doc.Notes)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *JSONStore) AddNote(content string) (models.Note, error) {
	if err := s.loaded(); err != nil {
		return models.Note{}, err
	}
	if strings.TrimSpace(content) == "" {
		return models.Note{}, errors.Validationf("note content cannot be empty")
	}

	note := models.Note{
		ID:        uuid.New().String(),
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.doc.Notes = append(s.doc.Notes, note)

	if err := s.save(); err != nil {
		return models.Note{}, errors.Backend(err)
	}
	return note, nil
}

func (s *JSONStore) DeleteNote(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	for i, n := range s.doc.Notes {
		if n.ID == id {
			s.doc.Notes = append(s.doc.Notes[:i], s.doc.Notes[i+1:]...)
			if err := s.save(); err != nil {
				return errors.Backend(err)
			}
			return nil
		}
	}
	return errors.NotFoundf("note %s", id)
}

// --- Settings ---

func (s *JSONStore) GetSetting(key string) (json.RawMessage, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	value, ok := s.doc.Settings[key]
	if !ok {
		return nil, errors.NotFoundf("setting %q", key)
	}
	return value, nil
}

func (s *JSONStore) SetSetting(key string, value json.RawMessage) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.doc.Settings[key] = value

	if err := s.save(); err != nil {
		return errors.Backend(err)
	}
	return nil
}
