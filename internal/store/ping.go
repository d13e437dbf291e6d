package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/carecircle/internal/model"
)

// PingStore is append-only. Readers see the most recent N pings.
type PingStore struct {
	db *sql.DB
}

func NewPingStore(db *sql.DB) *PingStore {
	return &PingStore{db: db}
}

const pingCols = `id, circle_id, from_name, from_user_id, to_role, sent_at`

func (s *PingStore) Create(ctx context.Context, p model.Ping) (*model.Ping, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pings (id, circle_id, from_name, from_user_id, to_role, sent_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.CircleID, p.FromName, p.FromUserID, p.ToRole, p.SentAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert ping: %w", err)
	}
	return &p, nil
}

// ListRecent returns up to limit pings, newest first.
func (s *PingStore) ListRecent(ctx context.Context, circleID string, limit int) ([]model.Ping, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pingCols+` FROM pings WHERE circle_id = ? ORDER BY sent_at DESC, seq DESC LIMIT ?`,
		circleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list pings: %w", err)
	}
	defer rows.Close()

	pings := []model.Ping{}
	for rows.Next() {
		var p model.Ping
		if err := rows.Scan(&p.ID, &p.CircleID, &p.FromName, &p.FromUserID, &p.ToRole, &p.SentAt); err != nil {
			return nil, fmt.Errorf("scan ping: %w", err)
		}
		pings = append(pings, p)
	}
	return pings, rows.Err()
}

// DeleteBefore removes pings sent before cutoff and returns how many were removed.
func (s *PingStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pings WHERE sent_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete old pings: %w", err)
	}
	return result.RowsAffected()
}
