package postgres

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/julianstephens/garden/internal/errors"
)

func (s *Store) GetSetting(key string) (json.RawMessage, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = $1", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("setting %q", key)
		}
		return nil, errors.Backendf(err, "querying setting %q", key)
	}
	return json.RawMessage(value), nil
}

func (s *Store) SetSetting(key string, value json.RawMessage) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, []byte(value), time.Now())
	if err != nil {
		return errors.Backendf(err, "saving setting %q", key)
	}
	return nil
}
