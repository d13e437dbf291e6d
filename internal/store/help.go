package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/carecircle/internal/model"
)

// HelpStore holds the circle's offers and requests. Documents are created
// and deleted, never updated.
type HelpStore struct {
	db *sql.DB
}

func NewHelpStore(db *sql.DB) *HelpStore {
	return &HelpStore{db: db}
}

func scanHelpItem(scanner interface{ Scan(...any) error }) (*model.HelpItem, error) {
	var h model.HelpItem
	err := scanner.Scan(&h.DocID, &h.ID, &h.Label, &h.Emoji, &h.CreatedByRole, &h.CreatedByUID, &h.CreatedByName, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

const helpCols = `doc_id, catalog_id, label, emoji, created_by_role, created_by_uid, created_by_name, created_at`

// Create stores item for its creator. A creator holding the same catalog id
// already gets the existing document back.
func (s *HelpStore) Create(ctx context.Context, circleID string, kind model.HelpKind, item model.HelpItem, now time.Time) (*model.HelpItem, error) {
	if item.DocID == "" {
		item.DocID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO help_items (doc_id, circle_id, kind, catalog_id, label, emoji, created_by_role, created_by_uid, created_by_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(circle_id, kind, catalog_id, created_by_uid) DO NOTHING`,
		item.DocID, circleID, kind, item.ID, item.Label, item.Emoji,
		item.CreatedByRole, item.CreatedByUID, item.CreatedByName, now.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", kind, err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+helpCols+` FROM help_items WHERE circle_id = ? AND kind = ? AND catalog_id = ? AND created_by_uid = ?`,
		circleID, kind, item.ID, item.CreatedByUID,
	)
	h, err := scanHelpItem(row)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return h, nil
}

func (s *HelpStore) List(ctx context.Context, circleID string, kind model.HelpKind) ([]model.HelpItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+helpCols+` FROM help_items WHERE circle_id = ? AND kind = ? ORDER BY created_at ASC, doc_id ASC`,
		circleID, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	items := []model.HelpItem{}
	for rows.Next() {
		h, err := scanHelpItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		items = append(items, *h)
	}
	return items, rows.Err()
}

// Delete removes the document if it belongs to creatorUID. It reports
// whether a document was removed.
func (s *HelpStore) Delete(ctx context.Context, circleID string, kind model.HelpKind, docID, creatorUID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM help_items WHERE circle_id = ? AND kind = ? AND doc_id = ? AND created_by_uid = ?`,
		circleID, kind, docID, creatorUID,
	)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", kind, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
