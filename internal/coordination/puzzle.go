package coordination

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/model"
	"github.com/dukerupert/carecircle/internal/puzzle"
	"github.com/dukerupert/carecircle/internal/websocket"
)

type PuzzleView struct {
	Date     string                   `json:"date"`
	Language string                   `json:"language"`
	Items    []puzzle.Item            `json:"items"`
	Progress model.WordPuzzleProgress `json:"progress"`
	Total    int                      `json:"total"`
}

// TodaysPuzzle returns today's set for the locale along with the caller's
// progress through it.
func (s *Service) TodaysPuzzle(ctx context.Context, m auth.Member, locale string) PuzzleView {
	s.puzzleMu.Lock()
	defer s.puzzleMu.Unlock()

	date := s.Today()
	sess := s.session(ctx, m, date, locale)
	s.publishIfNeeded(ctx, m, sess)

	return PuzzleView{
		Date:     date,
		Language: puzzle.Language(locale),
		Items:    sess.Items(),
		Progress: sess.Progress(),
		Total:    sess.Total(),
	}
}

type PuzzleAnswer struct {
	WordID string `json:"word_id"`
	Locale string `json:"locale"`
	// Answer is the chosen option. When empty, IsCorrect is taken as given.
	Answer    string `json:"answer"`
	IsCorrect bool   `json:"is_correct"`
}

// SubmitPuzzleAnswer records the first answer for a word. The submission
// that completes the set publishes the leaderboard entry.
func (s *Service) SubmitPuzzleAnswer(ctx context.Context, m auth.Member, in PuzzleAnswer) (puzzle.SubmitResult, error) {
	if in.WordID == "" {
		return puzzle.SubmitResult{}, invalid("word_id is required")
	}

	s.puzzleMu.Lock()
	defer s.puzzleMu.Unlock()

	sess := s.session(ctx, m, s.Today(), in.Locale)

	correct := in.IsCorrect
	if in.Answer != "" {
		item, ok := findItem(sess.Items(), in.WordID)
		if !ok {
			return puzzle.SubmitResult{}, invalid("word %q is not in today's puzzle", in.WordID)
		}
		correct = strings.EqualFold(strings.TrimSpace(in.Answer), item.Options[item.CorrectIndex])
	}

	res := sess.Submit(ctx, in.WordID, correct)
	s.publishIfNeeded(ctx, m, sess)
	return res, nil
}

func (s *Service) session(ctx context.Context, m auth.Member, date, locale string) *puzzle.Session {
	items := puzzle.Today(date, locale, s.size)
	return puzzle.NewSession(ctx, s.progress, s.memory, m.UserID, date, items, s.logger.With("circle", m.CircleID))
}

// publishIfNeeded writes the leaderboard entry and activity for a completed
// session exactly once. A failed write leaves the session unpublished so the
// next call retries it.
func (s *Service) publishIfNeeded(ctx context.Context, m auth.Member, sess *puzzle.Session) {
	if !sess.NeedsPublish() {
		return
	}

	p := sess.Progress()
	now := s.clock()
	name := displayName(m)

	created, err := s.stores.Scores.CreateOnce(ctx, model.LeaderboardEntry{
		CircleID:    m.CircleID,
		UserID:      m.UserID,
		DisplayName: name,
		Score:       p.Score,
		Total:       sess.Total(),
		Date:        p.Date,
		CreatedAt:   now,
	})
	if err != nil {
		s.recordError(m.CircleID, "publish score", err)
		return
	}

	if created {
		_, err := s.stores.Activity.Create(ctx, model.Activity{
			CircleID:    m.CircleID,
			Kind:        model.ActivityPuzzleComplete,
			UserID:      m.UserID,
			DisplayName: name,
			Message:     fmt.Sprintf("%s finished today's puzzle with %d/%d", name, p.Score, sess.Total()),
			CreatedAt:   now,
		})
		if err != nil {
			s.logger.Warn("record puzzle activity", "circle", m.CircleID, "error", err)
		}
		s.broadcast(m.CircleID, websocket.NewMessage("leaderboard", "created", m.UserID, map[string]any{"date": p.Date}))
		s.broadcast(m.CircleID, websocket.NewMessage("activity", "created", "", nil))
	}
	sess.MarkPublished(ctx)
}

// Leaderboard ranks today's entries for the circle.
func (s *Service) Leaderboard(ctx context.Context, circleID string) Snapshot[[]puzzle.Ranked] {
	date := s.Today()
	snap := snapshot(ctx, s, circleID, "leaderboard", func(ctx context.Context) ([]puzzle.Ranked, error) {
		entries, err := s.stores.Scores.List(ctx, circleID)
		if err != nil {
			return nil, err
		}
		return puzzle.Rank(entries, date), nil
	})
	if snap.Data == nil {
		snap.Data = []puzzle.Ranked{}
	}
	return snap
}

func findItem(items []puzzle.Item, wordID string) (puzzle.Item, bool) {
	for _, it := range items {
		if it.WordID == wordID {
			return it, true
		}
	}
	return puzzle.Item{}, false
}

func displayName(m auth.Member) string {
	if m.Name != "" {
		return m.Name
	}
	return m.UserID
}
