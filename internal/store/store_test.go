package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dukerupert/carecircle/internal/database"
)

var (
	ctx = context.Background()
	t0  = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func openTestCache(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenCache(":memory:")
	if err != nil {
		t.Fatalf("open test cache: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
