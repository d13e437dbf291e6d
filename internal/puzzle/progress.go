package puzzle

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/dukerupert/carecircle/internal/model"
)

// ProgressCache is the durable per-user store for in-progress puzzles.
// LoadProgress returns (nil, nil) when no record exists.
type ProgressCache interface {
	LoadProgress(ctx context.Context, userID, date string) (*model.WordPuzzleProgress, error)
	SaveProgress(ctx context.Context, p *model.WordPuzzleProgress) error
}

// MemoryCache keeps progress in process memory. It backs sessions when the
// durable cache is unavailable.
type MemoryCache struct {
	mu      sync.Mutex
	records map[string]model.WordPuzzleProgress
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{records: make(map[string]model.WordPuzzleProgress)}
}

func (c *MemoryCache) LoadProgress(_ context.Context, userID, date string) (*model.WordPuzzleProgress, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.records[userID+"|"+date]
	if !ok {
		return nil, nil
	}
	p.Answers = maps.Clone(p.Answers)
	return &p, nil
}

func (c *MemoryCache) SaveProgress(_ context.Context, p *model.WordPuzzleProgress) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *p
	cp.Answers = maps.Clone(p.Answers)
	c.records[p.UserID+"|"+p.Date] = cp
	return nil
}

// SubmitResult reports the state after an answer was submitted.
type SubmitResult struct {
	IsCorrect  bool `json:"is_correct"`
	NewScore   int  `json:"new_score"`
	IsComplete bool `json:"is_complete"`
	// JustCompleted is true only for the submission that finished the set.
	JustCompleted bool `json:"just_completed"`
	// Duplicate is true when the word had already been answered.
	Duplicate bool `json:"duplicate"`
}

// Session is one user's progress through one day's puzzle. It writes
// through to its cache on every accepted answer. Session is not safe for
// concurrent use.
type Session struct {
	cache    ProgressCache
	fallback ProgressCache
	logger   *slog.Logger
	items    []Item
	progress model.WordPuzzleProgress
	now      func() time.Time
}

// NewSession loads the user's record for date. If cache fails, the session
// continues on fallback and progress will not survive a restart.
func NewSession(ctx context.Context, cache, fallback ProgressCache, userID, date string, items []Item, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		cache:    cache,
		fallback: fallback,
		logger:   logger,
		items:    items,
		now:      time.Now,
		progress: model.WordPuzzleProgress{
			UserID:  userID,
			Date:    date,
			Answers: make(map[string]bool),
		},
	}

	if s.cache == nil {
		s.cache, s.fallback = fallback, nil
	}
	if s.cache == nil {
		s.cache = NewMemoryCache()
	}

	p, err := s.cache.LoadProgress(ctx, userID, date)
	if err != nil && s.fallback != nil {
		logger.Warn("progress cache unavailable, using memory", "user_id", userID, "date", date, "error", err)
		s.cache, s.fallback = s.fallback, nil
		p, err = s.cache.LoadProgress(ctx, userID, date)
	}
	if err != nil {
		logger.Warn("load puzzle progress", "user_id", userID, "date", date, "error", err)
	}
	if p != nil {
		s.progress = *p
		if s.progress.Answers == nil {
			s.progress.Answers = make(map[string]bool)
		}
		if !s.progress.Complete {
			// The record may hold answers from another locale's set.
			_, s.progress.Score = s.tally()
		}
	}
	return s
}

// Items returns the day's puzzle.
func (s *Session) Items() []Item {
	return s.items
}

// Progress returns a copy of the current record.
func (s *Session) Progress() model.WordPuzzleProgress {
	p := s.progress
	p.Answers = maps.Clone(s.progress.Answers)
	return p
}

func (s *Session) Total() int {
	return len(s.items)
}

// NeedsPublish reports whether the completed set still has to be published.
func (s *Session) NeedsPublish() bool {
	return s.progress.Complete && !s.progress.Published
}

// Submit records the first answer for wordID. Later answers for the same
// word, and words not in today's set, leave the record unchanged.
func (s *Session) Submit(ctx context.Context, wordID string, correct bool) SubmitResult {
	res := SubmitResult{
		NewScore:   s.progress.Score,
		IsComplete: s.progress.Complete,
	}

	if !s.contains(wordID) {
		return res
	}
	if prev, ok := s.progress.Answers[wordID]; ok {
		res.IsCorrect = prev
		res.Duplicate = true
		return res
	}
	if s.progress.Complete {
		return res
	}

	s.progress.Answers[wordID] = correct
	answered, score := s.tally()
	s.progress.Score = score
	if answered == len(s.items) {
		s.progress.Complete = true
		res.JustCompleted = true
	}
	s.save(ctx)

	res.IsCorrect = correct
	res.NewScore = s.progress.Score
	res.IsComplete = s.progress.Complete
	return res
}

// MarkPublished records that the leaderboard entry was written.
func (s *Session) MarkPublished(ctx context.Context) {
	s.progress.Published = true
	s.save(ctx)
}

// tally counts the answered and correct words of this session's set.
// Answers for words outside the set are ignored.
func (s *Session) tally() (answered, correct int) {
	for _, it := range s.items {
		ok, found := s.progress.Answers[it.WordID]
		if !found {
			continue
		}
		answered++
		if ok {
			correct++
		}
	}
	return answered, correct
}

func (s *Session) contains(wordID string) bool {
	for _, it := range s.items {
		if it.WordID == wordID {
			return true
		}
	}
	return false
}

func (s *Session) save(ctx context.Context) {
	s.progress.UpdatedAt = s.now().UTC()
	err := s.cache.SaveProgress(ctx, &s.progress)
	if err == nil {
		return
	}
	if s.fallback == nil {
		s.logger.Warn("save puzzle progress", "user_id", s.progress.UserID, "error", err)
		return
	}
	s.logger.Warn("progress cache unavailable, using memory", "user_id", s.progress.UserID, "error", err)
	s.cache, s.fallback = s.fallback, nil
	if err := s.cache.SaveProgress(ctx, &s.progress); err != nil {
		s.logger.Warn("save puzzle progress", "user_id", s.progress.UserID, "error", err)
	}
}
