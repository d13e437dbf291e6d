package coordination

import (
	"context"
	"fmt"
	"time"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/model"
	"github.com/dukerupert/carecircle/internal/ping"
	"github.com/dukerupert/carecircle/internal/websocket"
)

// SendPing broadcasts a "thinking of you" signal. An empty toRole targets
// the other side of the circle.
func (s *Service) SendPing(ctx context.Context, m auth.Member, toRole model.Role) (*model.Ping, error) {
	if toRole == "" {
		toRole = model.RoleSenior
		if m.Role == model.RoleSenior {
			toRole = model.RoleRelative
		}
	}
	if !toRole.Valid() {
		return nil, invalid("unknown role %q", toRole)
	}

	now := s.clock()
	p, err := s.stores.Pings.Create(ctx, model.Ping{
		CircleID:   m.CircleID,
		FromName:   displayName(m),
		FromUserID: m.UserID,
		ToRole:     toRole,
		SentAt:     now,
	})
	if err != nil {
		s.recordError(m.CircleID, "send ping", err)
		return nil, err
	}

	if _, err := s.stores.Activity.Create(ctx, model.Activity{
		CircleID:    m.CircleID,
		Kind:        model.ActivityPing,
		UserID:      m.UserID,
		DisplayName: p.FromName,
		Message:     fmt.Sprintf("%s is thinking of you", p.FromName),
		CreatedAt:   now,
	}); err != nil {
		s.logger.Warn("record ping activity", "circle", m.CircleID, "error", err)
	}

	s.broadcast(m.CircleID, websocket.NewMessage("ping", "created", p.ID, map[string]any{"from_user_id": p.FromUserID}))

	if s.notifier != nil {
		sent := *p
		go func() {
			n := s.notifier.NotifyPing(context.WithoutCancel(ctx), sent)
			s.logger.Debug("ping pushed", "circle", sent.CircleID, "devices", n)
		}()
	}
	return p, nil
}

// CurrentNotification returns the ping latched for the caller, if any. The
// recent window is re-read on every call; a new qualifying ping supersedes
// the latched one.
func (s *Service) CurrentNotification(ctx context.Context, m auth.Member) Snapshot[*model.Ping] {
	window := snapshot(ctx, s, m.CircleID, "pings", func(ctx context.Context) ([]model.Ping, error) {
		return s.stores.Pings.ListRecent(ctx, m.CircleID, ping.WindowSize)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.latch(m)
	l.Observe(window.Data, m.UserID, s.clock())
	return Snapshot[*model.Ping]{Data: l.Current(), Stale: window.Stale, Error: window.Error}
}

// DismissNotification clears the caller's latched ping. The same ping is
// not latched again.
func (s *Service) DismissNotification(m auth.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latch(m).Dismiss()
}

// latch must be called with s.mu held.
func (s *Service) latch(m auth.Member) *ping.Latch {
	key := m.CircleID + "|" + m.UserID
	l, ok := s.latches[key]
	if !ok {
		l = &ping.Latch{}
		s.latches[key] = l
	}
	return l
}

// pruneLatches drops latches whose ping can no longer qualify and returns
// how many were removed.
func (s *Service) pruneLatches(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, l := range s.latches {
		if l.Expired(now) {
			delete(s.latches, key)
			n++
		}
	}
	return n
}

// Activity returns the circle's most recent activity entries.
func (s *Service) Activity(ctx context.Context, circleID string) Snapshot[[]model.Activity] {
	snap := snapshot(ctx, s, circleID, "activity", func(ctx context.Context) ([]model.Activity, error) {
		return s.stores.Activity.ListRecent(ctx, circleID, ActivityLimit)
	})
	if snap.Data == nil {
		snap.Data = []model.Activity{}
	}
	return snap
}
