package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/carecircle/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var completed, recurring int
	var completedAt sql.NullTime

	err := scanner.Scan(
		&t.ID, &t.CircleID, &t.Title, &t.Type, &t.Period, &t.Time,
		&completed, &completedAt, &recurring,
		&t.CreatedByRole, &t.CreatedByName, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Completed = completed != 0
	t.Recurring = recurring != 0
	if completedAt.Valid {
		at := completedAt.Time
		t.CompletedAt = &at
	}
	return &t, nil
}

const taskCols = `id, circle_id, title, type, period, time, completed, completed_at, recurring, created_by_role, created_by_name, created_at, updated_at`

const taskOrder = `ORDER BY CASE period
	WHEN 'morning' THEN 0 WHEN 'lunch' THEN 1 WHEN 'afternoon' THEN 2 WHEN 'evening' THEN 3 ELSE 4 END,
	time ASC, title ASC`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTask(ctx context.Context, db execer, t *model.Task, now time.Time) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	var completedAt sql.NullTime
	if t.Completed {
		at := now
		if t.CompletedAt != nil {
			at = *t.CompletedAt
		}
		completedAt = sql.NullTime{Time: at.UTC(), Valid: true}
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO tasks (id, circle_id, title, type, period, time, completed, completed_at, recurring, created_by_role, created_by_name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CircleID, t.Title, t.Type, t.Period, t.Time,
		boolInt(t.Completed), completedAt, boolInt(t.Recurring),
		t.CreatedByRole, t.CreatedByName, now.UTC(), now.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Create inserts t into its circle. An empty ID is replaced by a new UUID.
func (s *TaskStore) Create(ctx context.Context, t model.Task, now time.Time) (*model.Task, error) {
	if err := insertTask(ctx, s.db, &t, now); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, t.CircleID, t.ID)
}

// CreateAll inserts every task in one transaction. Either all of them are
// stored or none are.
func (s *TaskStore) CreateAll(ctx context.Context, tasks []model.Task, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i := range tasks {
		t := tasks[i]
		if err := insertTask(ctx, tx, &t, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tasks: %w", err)
	}
	return nil
}

func (s *TaskStore) GetByID(ctx context.Context, circleID, id string) (*model.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskCols+` FROM tasks WHERE circle_id = ? AND id = ?`, circleID, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) List(ctx context.Context, circleID string) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskCols+` FROM tasks WHERE circle_id = ? `+taskOrder, circleID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// SetCompleted writes the completion flag and keeps completed_at in step
// with it: set to at when completing, cleared otherwise.
func (s *TaskStore) SetCompleted(ctx context.Context, circleID, id string, completed bool, at time.Time) (*model.Task, error) {
	var completedAt sql.NullTime
	if completed {
		completedAt = sql.NullTime{Time: at.UTC(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed = ?, completed_at = ?, updated_at = ? WHERE circle_id = ? AND id = ?`,
		boolInt(completed), completedAt, at.UTC(), circleID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set task completed: %w", err)
	}
	return s.GetByID(ctx, circleID, id)
}

func (s *TaskStore) Delete(ctx context.Context, circleID, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE circle_id = ? AND id = ?`, circleID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CircleIDs lists every circle that has tasks or reset state.
func (s *TaskStore) CircleIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT circle_id FROM tasks UNION SELECT circle_id FROM circle_settings ORDER BY circle_id`)
	if err != nil {
		return nil, fmt.Errorf("list circle ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan circle id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
