package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/carecircle/internal/model"
)

// ScoreStore holds the word game leaderboard: one document per user per day.
type ScoreStore struct {
	db *sql.DB
}

func NewScoreStore(db *sql.DB) *ScoreStore {
	return &ScoreStore{db: db}
}

// CreateOnce stores e unless the user already has an entry for e.Date. It
// reports whether e was stored.
func (s *ScoreStore) CreateOnce(ctx context.Context, e model.LeaderboardEntry) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO word_game_scores (circle_id, user_id, date, display_name, score, total, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(circle_id, user_id, date) DO NOTHING`,
		e.CircleID, e.UserID, e.Date, e.DisplayName, e.Score, e.Total, e.CreatedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert score: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// List returns every entry for the circle ordered by score descending, then
// submission order.
func (s *ScoreStore) List(ctx context.Context, circleID string) ([]model.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT circle_id, user_id, date, display_name, score, total, created_at
		 FROM word_game_scores WHERE circle_id = ? ORDER BY score DESC, seq ASC`,
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.CircleID, &e.UserID, &e.Date, &e.DisplayName, &e.Score, &e.Total, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes entries dated before date (YYYY-MM-DD).
func (s *ScoreStore) DeleteBefore(ctx context.Context, date string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM word_game_scores WHERE date < ?`, date)
	if err != nil {
		return 0, fmt.Errorf("delete old scores: %w", err)
	}
	return result.RowsAffected()
}
