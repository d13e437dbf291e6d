package coordination

import (
	"context"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/matcher"
	"github.com/dukerupert/carecircle/internal/model"
	"github.com/dukerupert/carecircle/internal/websocket"
)

// Board is the circle's live help-exchange state.
type Board struct {
	Offers   []model.Offer        `json:"offers"`
	Requests []model.Request      `json:"requests"`
	Statuses []model.MemberStatus `json:"statuses"`
}

type MatchView struct {
	matcher.Result
	// Surfaced is the top match after the caller's dismissals.
	Surfaced *matcher.ActiveMatch `json:"surfaced"`
}

func (s *Service) loadBoard(ctx context.Context, circleID string) (Board, error) {
	offers, err := s.stores.Help.List(ctx, circleID, model.KindOffer)
	if err != nil {
		return Board{}, err
	}
	requests, err := s.stores.Help.List(ctx, circleID, model.KindRequest)
	if err != nil {
		return Board{}, err
	}
	statuses, err := s.stores.Status.List(ctx, circleID)
	if err != nil {
		return Board{}, err
	}
	return Board{Offers: offers, Requests: requests, Statuses: statuses}, nil
}

func (s *Service) Board(ctx context.Context, circleID string) Snapshot[Board] {
	snap := snapshot(ctx, s, circleID, "board", func(ctx context.Context) (Board, error) {
		return s.loadBoard(ctx, circleID)
	})
	if snap.Data.Offers == nil {
		snap.Data.Offers = []model.Offer{}
	}
	if snap.Data.Requests == nil {
		snap.Data.Requests = []model.Request{}
	}
	if snap.Data.Statuses == nil {
		snap.Data.Statuses = []model.MemberStatus{}
	}
	return snap
}

// ActiveMatches recomputes the circle's matches from the current board.
// dismissed holds match keys the caller has already seen off.
func (s *Service) ActiveMatches(ctx context.Context, circleID string, dismissed map[string]bool) Snapshot[MatchView] {
	snap := snapshot(ctx, s, circleID, "matches", func(ctx context.Context) (matcher.Result, error) {
		b, err := s.loadBoard(ctx, circleID)
		if err != nil {
			return matcher.Result{}, err
		}
		return matcher.Match(s.table, b.Offers, b.Requests, b.Statuses), nil
	})

	res := snap.Data
	if res.Matches == nil {
		res.Matches = []matcher.ActiveMatch{}
	}
	return Snapshot[MatchView]{
		Data:  MatchView{Result: res, Surfaced: res.Surface(dismissed)},
		Stale: snap.Stale,
		Error: snap.Error,
	}
}

func (s *Service) AddOffer(ctx context.Context, m auth.Member, catalogID string) (*model.Offer, error) {
	item, ok := s.table.Offer(catalogID)
	if !ok {
		return nil, invalid("unknown offer %q", catalogID)
	}
	return s.addHelp(ctx, m, model.KindOffer, item.ID, item.Label, item.Emoji)
}

func (s *Service) AddRequest(ctx context.Context, m auth.Member, catalogID string) (*model.Request, error) {
	item, ok := s.table.Request(catalogID)
	if !ok {
		return nil, invalid("unknown request %q", catalogID)
	}
	return s.addHelp(ctx, m, model.KindRequest, item.ID, item.Label, item.Emoji)
}

func (s *Service) addHelp(ctx context.Context, m auth.Member, kind model.HelpKind, id, label, emoji string) (*model.HelpItem, error) {
	h, err := s.stores.Help.Create(ctx, m.CircleID, kind, model.HelpItem{
		ID:            id,
		Label:         label,
		Emoji:         emoji,
		CreatedByRole: m.Role,
		CreatedByUID:  m.UserID,
		CreatedByName: m.Name,
	}, s.clock())
	if err != nil {
		s.recordError(m.CircleID, "add "+string(kind), err)
		return nil, err
	}

	s.broadcast(m.CircleID, websocket.NewMessage(string(kind), "created", h.DocID, nil))
	return h, nil
}

// RemoveOffer deletes one of the caller's offers.
func (s *Service) RemoveOffer(ctx context.Context, m auth.Member, docID string) error {
	return s.removeHelp(ctx, m, model.KindOffer, docID)
}

// RemoveRequest deletes one of the caller's requests.
func (s *Service) RemoveRequest(ctx context.Context, m auth.Member, docID string) error {
	return s.removeHelp(ctx, m, model.KindRequest, docID)
}

func (s *Service) removeHelp(ctx context.Context, m auth.Member, kind model.HelpKind, docID string) error {
	ok, err := s.stores.Help.Delete(ctx, m.CircleID, kind, docID, m.UserID)
	if err != nil {
		s.recordError(m.CircleID, "remove "+string(kind), err)
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.broadcast(m.CircleID, websocket.NewMessage(string(kind), "deleted", docID, nil))
	return nil
}

// SetStatus overwrites the caller's status.
func (s *Service) SetStatus(ctx context.Context, m auth.Member, status model.Status) (*model.MemberStatus, error) {
	if !status.Valid() {
		return nil, invalid("unknown status %q", status)
	}

	ms, err := s.stores.Status.Set(ctx, m.CircleID, model.MemberStatus{
		UserID: m.UserID,
		Name:   m.Name,
		Status: status,
		Role:   m.Role,
	}, s.clock())
	if err != nil {
		s.recordError(m.CircleID, "set status", err)
		return nil, err
	}

	s.broadcast(m.CircleID, websocket.NewMessage("status", "updated", m.UserID, map[string]any{"status": string(status)}))
	return ms, nil
}
