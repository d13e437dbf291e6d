package store

import (
	"testing"
	"time"

	"github.com/dukerupert/carecircle/internal/model"
)

func setupHelpTestDB(t *testing.T) *HelpStore {
	t.Helper()
	return NewHelpStore(openTestDB(t))
}

func TestHelpCreateIsIdempotentPerCreator(t *testing.T) {
	hs := setupHelpTestDB(t)

	item := model.HelpItem{ID: "cook", Label: "Cook a meal", Emoji: "🍲", CreatedByRole: model.RoleRelative, CreatedByUID: "u1", CreatedByName: "Ana"}
	first, err := hs.Create(ctx, "c1", model.KindOffer, item, t0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.DocID == "" {
		t.Fatal("expected doc id")
	}

	second, err := hs.Create(ctx, "c1", model.KindOffer, item, t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("create again: %v", err)
	}
	if second.DocID != first.DocID {
		t.Errorf("doc id = %q, want existing %q", second.DocID, first.DocID)
	}

	// another member may hold the same offer
	item.CreatedByUID = "u2"
	if _, err := hs.Create(ctx, "c1", model.KindOffer, item, t0); err != nil {
		t.Fatalf("create for u2: %v", err)
	}

	offers, err := hs.List(ctx, "c1", model.KindOffer)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(offers) != 2 {
		t.Errorf("len = %d, want 2", len(offers))
	}
	requests, _ := hs.List(ctx, "c1", model.KindRequest)
	if len(requests) != 0 {
		t.Errorf("requests = %d, want 0", len(requests))
	}
}

func TestHelpDeleteOnlyByCreator(t *testing.T) {
	hs := setupHelpTestDB(t)

	req, _ := hs.Create(ctx, "c1", model.KindRequest, model.HelpItem{ID: "ride", Label: "Ride", CreatedByRole: model.RoleSenior, CreatedByUID: "s1"}, t0)

	ok, err := hs.Delete(ctx, "c1", model.KindRequest, req.DocID, "u2")
	if err != nil {
		t.Fatalf("delete by other: %v", err)
	}
	if ok {
		t.Error("non-creator removed a request")
	}

	ok, err = hs.Delete(ctx, "c1", model.KindRequest, req.DocID, "s1")
	if err != nil {
		t.Fatalf("delete by creator: %v", err)
	}
	if !ok {
		t.Error("creator could not remove request")
	}

	items, _ := hs.List(ctx, "c1", model.KindRequest)
	if len(items) != 0 {
		t.Errorf("len = %d, want 0", len(items))
	}
}
