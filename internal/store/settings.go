package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/carecircle/internal/model"
)

// KeyLastResetDate holds the circle's checkIn document: the last calendar
// date daily tasks were reset.
const KeyLastResetDate = "checkIn.lastResetDate"

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the value for key and whether it exists.
func (s *SettingsStore) Get(ctx context.Context, circleID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM circle_settings WHERE circle_id = ? AND key = ?`, circleID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SettingsStore) GetAll(ctx context.Context, circleID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM circle_settings WHERE circle_id = ? ORDER BY key`, circleID)
	if err != nil {
		return nil, fmt.Errorf("get all settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (s *SettingsStore) Set(ctx context.Context, circleID, key, value string, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO circle_settings (circle_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(circle_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		circleID, key, value, now.UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// ResetState returns the circle's reset state, or nil if it was never written.
func (s *SettingsStore) ResetState(ctx context.Context, circleID string) (*model.CircleResetState, error) {
	value, ok, err := s.Get(ctx, circleID, KeyLastResetDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &model.CircleResetState{LastResetDate: value}, nil
}

func (s *SettingsStore) SetResetState(ctx context.Context, circleID string, state model.CircleResetState, now time.Time) error {
	return s.Set(ctx, circleID, KeyLastResetDate, state.LastResetDate, now)
}
