package postgres

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/garden/internal/constants"
	"github.com/julianstephens/garden/internal/errors"
	"github.com/julianstephens/garden/internal/models"
	"github.com/julianstephens/garden/internal/storage"
)

const habitColumns = "id, name, color, frequency, goal_per_week, is_negative, parent_id, order_index, created_at"

func scanHabitRecord(scan func(...any) error) (models.HabitRecord, error) {
	var r models.HabitRecord
	var frequency string
	var parentID sql.NullString

	if err := scan(&r.ID, &r.Name, &r.Color, &frequency, &r.GoalPerWeek, &r.IsNegative, &parentID, &r.OrderIndex, &r.CreatedAt); err != nil {
		return models.HabitRecord{}, err
	}

	r.Frequency = constants.Frequency(frequency)
	if parentID.Valid {
		r.ParentID = parentID.String
	}

	return r, nil
}

func (s *Store) habitRecords() ([]models.HabitRecord, error) {
	rows, err := s.db.Query("SELECT " + habitColumns + " FROM habits ORDER BY order_index, created_at")
	if err != nil {
		return nil, errors.Backendf(err, "querying habits")
	}
	defer rows.Close()

	var records []models.HabitRecord
	for rows.Next() {
		r, err := scanHabitRecord(rows.Scan)
		if err != nil {
			return nil, errors.Backendf(err, "scanning habit")
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) GetHabits() ([]models.Habit, error) {
	records, err := s.habitRecords()
	if err != nil {
		return nil, err
	}

	logs, err := s.GetHabitLogs("", "")
	if err != nil {
		return nil, err
	}

	return storage.BuildHabitTree(records, logs), nil
}

func (s *Store) getHabitRecord(id string) (models.HabitRecord, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = $1", id)
	r, err := scanHabitRecord(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.HabitRecord{}, errors.NotFoundf("habit %s", id)
		}
		return models.HabitRecord{}, errors.Backendf(err, "querying habit %s", id)
	}
	return r, nil
}

func (s *Store) AddHabit(n models.NewHabit) (models.Habit, error) {
	if err := n.Validate(); err != nil {
		return models.Habit{}, err
	}

	var maxOrder int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(order_index), 0) FROM habits").Scan(&maxOrder); err != nil {
		return models.Habit{}, errors.Backendf(err, "querying max order index")
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

	var parentID any
	if record.ParentID != "" {
		parentID = record.ParentID
	}
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, color, frequency, goal_per_week, is_negative, parent_id, order_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.Name, record.Color, string(record.Frequency), record.GoalPerWeek,
		record.IsNegative, parentID, record.OrderIndex, record.CreatedAt)
	if err != nil {
		return models.Habit{}, errors.Backendf(err, "inserting habit")
	}

	return storage.HabitFromRecord(record), nil
}

func (s *Store) UpdateHabit(id string, upd models.HabitUpdate) (models.Habit, error) {
	if err := upd.Validate(); err != nil {
		return models.Habit{}, err
	}

	record, err := s.getHabitRecord(id)
	if err != nil {
		return models.Habit{}, err
	}

	storage.ApplyHabitUpdate(&record, upd)

	_, err = s.db.Exec(`
		UPDATE habits SET name = $1, color = $2, frequency = $3, goal_per_week = $4, is_negative = $5
		WHERE id = $6`,
		record.Name, record.Color, string(record.Frequency), record.GoalPerWeek, record.IsNegative, id)
	if err != nil {
		return models.Habit{}, errors.Backendf(err, "updating habit %s", id)
	}

	return storage.HabitFromRecord(record), nil
}

// DeleteHabit removes one habit row plus its own logs. It never touches rows
// whose parent_id equals id.
func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Backend(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habit_logs WHERE habit_id = $1", id); err != nil {
		return errors.Backendf(err, "deleting logs for habit %s", id)
	}

	res, err := tx.Exec("DELETE FROM habits WHERE id = $1", id)
	if err != nil {
		return errors.Backendf(err, "deleting habit %s", id)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Backend(err)
	}
	if affected == 0 {
		return errors.NotFoundf("habit %s", id)
	}

	if err := tx.Commit(); err != nil {
		return errors.Backend(err)
	}
	return nil
}

func (s *Store) MoveHabitUp(id string) error {
	return s.moveHabit(id, -1)
}

func (s *Store) MoveHabitDown(id string) error {
	return s.moveHabit(id, +1)
}

func (s *Store) moveHabit(id string, delta int) error {
	// Adjacency is computed over the full ordered parent list.
	rows, err := s.db.Query("SELECT id, order_index FROM habits WHERE parent_id IS NULL ORDER BY order_index, created_at")
	if err != nil {
		return errors.Backendf(err, "querying habit order")
	}
	defer rows.Close()

	type ref struct {
		id    string
		order int
	}
	var parents []ref
	for rows.Next() {
		var r ref
		if err := rows.Scan(&r.id, &r.order); err != nil {
			return errors.Backendf(err, "scanning habit order")
		}
		parents = append(parents, r)
	}
	if err := rows.Err(); err != nil {
		return errors.Backend(err)
	}

	pos := -1
	for i, p := range parents {
		if p.id == id {
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

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Backend(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE habits SET order_index = $1 WHERE id = $2", parents[swap].order, parents[pos].id); err != nil {
		return errors.Backendf(err, "reordering habit %s", parents[pos].id)
	}
	if _, err := tx.Exec("UPDATE habits SET order_index = $1 WHERE id = $2", parents[pos].order, parents[swap].id); err != nil {
		return errors.Backendf(err, "reordering habit %s", parents[swap].id)
	}

	if err := tx.Commit(); err != nil {
		return errors.Backend(err)
	}
	return nil
}

func (s *Store) UpsertHabitLog(habitID, date string) error {
	_, err := s.db.Exec(`
		INSERT INTO habit_logs (id, habit_id, date_completed) VALUES ($1, $2, $3)
		ON CONFLICT (habit_id, date_completed) DO NOTHING`,
		uuid.New().String(), habitID, date)
	if err != nil {
		return errors.Backendf(err, "upserting habit log")
	}
	return nil
}

func (s *Store) DeleteHabitLog(habitID, date string) error {
	_, err := s.db.Exec("DELETE FROM habit_logs WHERE habit_id = $1 AND date_completed = $2", habitID, date)
	if err != nil {
		return errors.Backendf(err, "deleting habit log")
	}
	return nil
}

func (s *Store) GetHabitLogs(startDate, endDate string) ([]models.HabitLog, error) {
	query := "SELECT id, habit_id, date_completed FROM habit_logs"
	var conds []string
	var args []any
	if startDate != "" {
		args = append(args, startDate)
		conds = append(conds, "date_completed >= $1")
	}
	if endDate != "" {
		args = append(args, endDate)
		if len(args) == 2 {
			conds = append(conds, "date_completed <= $2")
		} else {
			conds = append(conds, "date_completed <= $1")
		}
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY date_completed"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Backendf(err, "querying habit logs")
	}
	defer rows.Close()

	var logs []models.HabitLog
	for rows.Next() {
		var log models.HabitLog
		if err := rows.Scan(&log.ID, &log.HabitID, &log.DateCompleted); err != nil {
			return nil, errors.Backendf(err, "scanning habit log")
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
