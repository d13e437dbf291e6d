package store

import (
	"testing"
	"time"

	"github.com/dukerupert/carecircle/internal/model"
)

func TestStatusSetOverwrites(t *testing.T) {
	ss := NewStatusStore(openTestDB(t))

	_, err := ss.Set(ctx, "c1", model.MemberStatus{UserID: "u1", Name: "Ana", Status: model.StatusHome, Role: model.RoleRelative}, t0)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := ss.Set(ctx, "c1", model.MemberStatus{UserID: "u1", Name: "Ana", Status: model.StatusCoffeeComing, Role: model.RoleRelative}, t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("set again: %v", err)
	}
	if got.Status != model.StatusCoffeeComing {
		t.Errorf("status = %q, want %q", got.Status, model.StatusCoffeeComing)
	}
	if !got.UpdatedAt.Equal(t0.Add(time.Minute)) {
		t.Errorf("updated_at = %v", got.UpdatedAt)
	}

	ss.Set(ctx, "c1", model.MemberStatus{UserID: "s1", Name: "Rosa", Status: model.StatusCoffeeReady, Role: model.RoleSenior}, t0)

	list, err := ss.List(ctx, "c1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("len = %d, want 2", len(list))
	}
}

func TestStatusGetMissing(t *testing.T) {
	ss := NewStatusStore(openTestDB(t))

	got, err := ss.Get(ctx, "c1", "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
