package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/carecircle/internal/model"
)

type ActivityStore struct {
	db *sql.DB
}

func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) Create(ctx context.Context, a model.Activity) (*model.Activity, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (id, circle_id, kind, user_id, display_name, message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CircleID, a.Kind, a.UserID, a.DisplayName, a.Message, a.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	return &a, nil
}

// ListRecent returns up to limit entries, newest first.
func (s *ActivityStore) ListRecent(ctx context.Context, circleID string, limit int) ([]model.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, circle_id, kind, user_id, display_name, message, created_at
		 FROM activity WHERE circle_id = ? ORDER BY created_at DESC, seq DESC LIMIT ?`,
		circleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	entries := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.CircleID, &a.Kind, &a.UserID, &a.DisplayName, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

func (s *ActivityStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM activity WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete old activity: %w", err)
	}
	return result.RowsAffected()
}
