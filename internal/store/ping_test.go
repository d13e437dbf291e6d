package store

import (
	"testing"
	"time"

	"github.com/dukerupert/carecircle/internal/model"
)

func TestPingListRecent(t *testing.T) {
	ps := NewPingStore(openTestDB(t))

	for i := 0; i < 12; i++ {
		_, err := ps.Create(ctx, model.Ping{CircleID: "c1", FromUserID: "u1", FromName: "Ana", ToRole: model.RoleSenior, SentAt: t0.Add(time.Duration(i) * time.Second)})
		if err != nil {
			t.Fatalf("create ping %d: %v", i, err)
		}
	}
	ps.Create(ctx, model.Ping{CircleID: "c2", FromUserID: "u9", SentAt: t0.Add(time.Hour)})

	pings, err := ps.ListRecent(ctx, "c1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pings) != 10 {
		t.Fatalf("len = %d, want 10", len(pings))
	}
	if !pings[0].SentAt.Equal(t0.Add(11 * time.Second)) {
		t.Errorf("newest sent_at = %v, want %v", pings[0].SentAt, t0.Add(11*time.Second))
	}
	for _, p := range pings {
		if p.CircleID != "c1" {
			t.Errorf("ping from circle %q leaked", p.CircleID)
		}
	}
}

func TestPingDeleteBefore(t *testing.T) {
	ps := NewPingStore(openTestDB(t))

	ps.Create(ctx, model.Ping{CircleID: "c1", FromUserID: "u1", SentAt: t0})
	ps.Create(ctx, model.Ping{CircleID: "c1", FromUserID: "u1", SentAt: t0.Add(48 * time.Hour)})

	n, err := ps.DeleteBefore(ctx, t0.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("delete before: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
}
