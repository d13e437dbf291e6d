package store

import (
	"testing"

	"github.com/dukerupert/carecircle/internal/model"
)

func setupSettingsTestDB(t *testing.T) *SettingsStore {
	t.Helper()
	return NewSettingsStore(openTestDB(t))
}

func TestSettingsGetMissing(t *testing.T) {
	ss := setupSettingsTestDB(t)

	_, ok, err := ss.Get(ctx, "c1", "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestSettingsSetOverwrites(t *testing.T) {
	ss := setupSettingsTestDB(t)

	if err := ss.Set(ctx, "c1", "locale", "en", t0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := ss.Set(ctx, "c1", "locale", "es", t0); err != nil {
		t.Fatalf("set again: %v", err)
	}
	ss.Set(ctx, "c2", "locale", "fr", t0)

	all, err := ss.GetAll(ctx, "c1")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 || all["locale"] != "es" {
		t.Errorf("settings = %v, want map[locale:es]", all)
	}
}

func TestSettingsResetState(t *testing.T) {
	ss := setupSettingsTestDB(t)

	state, err := ss.ResetState(ctx, "c1")
	if err != nil {
		t.Fatalf("reset state: %v", err)
	}
	if state != nil {
		t.Fatalf("expected nil state, got %+v", state)
	}

	if err := ss.SetResetState(ctx, "c1", model.CircleResetState{LastResetDate: "2024-01-02"}, t0); err != nil {
		t.Fatalf("set reset state: %v", err)
	}
	state, err = ss.ResetState(ctx, "c1")
	if err != nil {
		t.Fatalf("reset state: %v", err)
	}
	if state == nil || state.LastResetDate != "2024-01-02" {
		t.Errorf("state = %+v, want 2024-01-02", state)
	}
}
