package store

import (
	"testing"

	"github.com/dukerupert/carecircle/internal/model"
)

func TestProgressRoundTrip(t *testing.T) {
	ps := NewProgressStore(openTestCache(t))

	got, err := ps.LoadProgress(ctx, "u1", "2024-01-01")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}

	p := &model.WordPuzzleProgress{UserID: "u1", Date: "2024-01-01", Answers: map[string]bool{"w1": true, "w2": false}, Score: 1, UpdatedAt: t0}
	if err := ps.SaveProgress(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	p.Complete = true
	p.Published = true
	if err := ps.SaveProgress(ctx, p); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err = ps.LoadProgress(ctx, "u1", "2024-01-01")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Score != 1 || !got.Complete || !got.Published {
		t.Errorf("progress = %+v", got)
	}
	if len(got.Answers) != 2 || !got.Answers["w1"] || got.Answers["w2"] {
		t.Errorf("answers = %v", got.Answers)
	}

	n, err := ps.DeleteBefore(ctx, "2024-01-02")
	if err != nil {
		t.Fatalf("delete before: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
}
