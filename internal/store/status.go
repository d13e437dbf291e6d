package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/carecircle/internal/model"
)

// StatusStore keeps one status document per member; every write overwrites it.
type StatusStore struct {
	db *sql.DB
}

func NewStatusStore(db *sql.DB) *StatusStore {
	return &StatusStore{db: db}
}

const statusCols = `user_id, name, status, role, updated_at`

func scanStatus(scanner interface{ Scan(...any) error }) (*model.MemberStatus, error) {
	var m model.MemberStatus
	if err := scanner.Scan(&m.UserID, &m.Name, &m.Status, &m.Role, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *StatusStore) Set(ctx context.Context, circleID string, ms model.MemberStatus, now time.Time) (*model.MemberStatus, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO member_status (circle_id, user_id, name, status, role, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(circle_id, user_id) DO UPDATE SET name = excluded.name, status = excluded.status,
		 role = excluded.role, updated_at = excluded.updated_at`,
		circleID, ms.UserID, ms.Name, ms.Status, ms.Role, now.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("set member status: %w", err)
	}
	return s.Get(ctx, circleID, ms.UserID)
}

func (s *StatusStore) Get(ctx context.Context, circleID, userID string) (*model.MemberStatus, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+statusCols+` FROM member_status WHERE circle_id = ? AND user_id = ?`, circleID, userID)
	m, err := scanStatus(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member status: %w", err)
	}
	return m, nil
}

func (s *StatusStore) List(ctx context.Context, circleID string) ([]model.MemberStatus, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+statusCols+` FROM member_status WHERE circle_id = ? ORDER BY user_id`, circleID)
	if err != nil {
		return nil, fmt.Errorf("list member status: %w", err)
	}
	defer rows.Close()

	statuses := []model.MemberStatus{}
	for rows.Next() {
		m, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member status: %w", err)
		}
		statuses = append(statuses, *m)
	}
	return statuses, rows.Err()
}
