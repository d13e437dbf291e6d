package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dukerupert/carecircle/internal/model"
)

// ProgressStore is the durable puzzle progress cache. It lives in its own
// database file so the shared store never sees in-progress answers.
type ProgressStore struct {
	db *sql.DB
}

func NewProgressStore(db *sql.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

func (s *ProgressStore) LoadProgress(ctx context.Context, userID, date string) (*model.WordPuzzleProgress, error) {
	var p model.WordPuzzleProgress
	var answers string
	var complete, published int

	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, date, answers, score, complete, published, updated_at FROM puzzle_progress WHERE user_id = ? AND date = ?`,
		userID, date,
	).Scan(&p.UserID, &p.Date, &answers, &p.Score, &complete, &published, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	if err := json.Unmarshal([]byte(answers), &p.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	p.Complete = complete != 0
	p.Published = published != 0
	return &p, nil
}

func (s *ProgressStore) SaveProgress(ctx context.Context, p *model.WordPuzzleProgress) error {
	answers, err := json.Marshal(p.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO puzzle_progress (user_id, date, answers, score, complete, published, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date) DO UPDATE SET answers = excluded.answers, score = excluded.score,
		 complete = excluded.complete, published = excluded.published, updated_at = excluded.updated_at`,
		p.UserID, p.Date, string(answers), p.Score, boolInt(p.Complete), boolInt(p.Published), p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// DeleteBefore removes progress records dated before date (YYYY-MM-DD).
func (s *ProgressStore) DeleteBefore(ctx context.Context, date string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM puzzle_progress WHERE date < ?`, date)
	if err != nil {
		return 0, fmt.Errorf("delete old progress: %w", err)
	}
	return result.RowsAffected()
}
