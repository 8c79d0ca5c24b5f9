package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/garden/internal/errors"
	"github.com/julianstephens/garden/internal/models"
)

func (s *Store) GetNotes() ([]models.Note, error) {
	rows, err := s.db.Query("SELECT id, content, created_at FROM notes ORDER BY created_at DESC")
	if err != nil {
		return nil, errors.Backendf(err, "querying notes")
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		var createdAt string
		if err := rows.Scan(&n.ID, &n.Content, &createdAt); err != nil {
			return nil, errors.Backendf(err, "scanning note")
		}
		if n.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) AddNote(content string) (models.Note, error) {
	if strings.TrimSpace(content) == "" {
		return models.Note{}, errors.Validationf("note content cannot be empty")
	}

	note := models.Note{
		ID:        uuid.New().String(),
		Content:   content,
		CreatedAt: time.Now(),
	}

	_, err := s.db.Exec("INSERT INTO notes (id, content, created_at) VALUES (?, ?, ?)",
		note.ID, note.Content, note.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return models.Note{}, errors.Backendf(err, "inserting note")
	}
	return note, nil
}

func (s *Store) DeleteNote(id string) error {
	res, err := s.db.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return errors.Backendf(err, "deleting note %s", id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Backend(err)
	}
	if affected == 0 {
		return errors.NotFoundf("note %s", id)
	}
	return nil
}
