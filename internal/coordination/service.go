// Package coordination composes the circle's stores with the derivation
// engines. Reads return the latest derived value or, when the store fails,
// the last value it derived for that circle flagged as stale.
package coordination

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/carecircle/internal/catalog"
	"github.com/dukerupert/carecircle/internal/model"
	"github.com/dukerupert/carecircle/internal/ping"
	"github.com/dukerupert/carecircle/internal/puzzle"
	"github.com/dukerupert/carecircle/internal/recurrence"
	"github.com/dukerupert/carecircle/internal/store"
	"github.com/dukerupert/carecircle/internal/websocket"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// RetentionWindow is how far back pings, activity, and scores are kept.
const RetentionWindow = 14 * 24 * time.Hour

// ActivityLimit bounds the activity feed.
const ActivityLimit = 20

// Snapshot is a derived value plus the error state of the read that produced it.
type Snapshot[T any] struct {
	Data  T      `json:"data"`
	Stale bool   `json:"stale,omitempty"`
	Error string `json:"error,omitempty"`
}

// PingNotifier delivers a ping outside the app, e.g. as a web push.
type PingNotifier interface {
	NotifyPing(ctx context.Context, p model.Ping) int
}

type Stores struct {
	Tasks    *store.TaskStore
	Settings *store.SettingsStore
	Help     *store.HelpStore
	Status   *store.StatusStore
	Pings    *store.PingStore
	Scores   *store.ScoreStore
	Activity *store.ActivityStore
}

type Config struct {
	// Location is the calendar used for "today". Nil means UTC.
	Location   *time.Location
	Catalog    *catalog.Table
	Rules      recurrence.Rules
	PuzzleSize int
	Clock      func() time.Time
}

// Service is safe for concurrent use.
type Service struct {
	stores   Stores
	progress puzzle.ProgressCache
	memory   *puzzle.MemoryCache
	hub      *websocket.Hub
	notifier PingNotifier
	logger   *slog.Logger

	loc   *time.Location
	table *catalog.Table
	rules recurrence.Rules
	size  int
	clock func() time.Time

	resetMu  sync.Mutex
	puzzleMu sync.Mutex

	mu      sync.Mutex
	circles map[string]*circleState
	latches map[string]*ping.Latch
}

type circleState struct {
	known   map[string]any
	lastErr string
}

// NewService wires the facade. progress, hub, and notifier may be nil.
func NewService(stores Stores, progress puzzle.ProgressCache, hub *websocket.Hub, notifier PingNotifier, cfg Config, logger *slog.Logger) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Rules.Defaults == nil && cfg.Rules.Keywords == nil {
		cfg.Rules = recurrence.DefaultRules()
	}
	if cfg.PuzzleSize <= 0 {
		cfg.PuzzleSize = puzzle.DefaultSize
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Service{
		stores:   stores,
		progress: progress,
		memory:   puzzle.NewMemoryCache(),
		hub:      hub,
		notifier: notifier,
		logger:   logger,
		loc:      cfg.Location,
		table:    cfg.Catalog,
		rules:    cfg.Rules,
		size:     cfg.PuzzleSize,
		clock:    cfg.Clock,
		circles:  make(map[string]*circleState),
		latches:  make(map[string]*ping.Latch),
	}
}

// Catalog returns the compatibility tables in use.
func (s *Service) Catalog() *catalog.Table {
	return s.table
}

// Today is the current calendar date in the service's location.
func (s *Service) Today() string {
	return recurrence.Today(s.clock(), s.loc)
}

// LastError returns the most recent store failure seen for the circle.
func (s *Service) LastError(circleID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.circles[circleID]; ok {
		return c.lastErr
	}
	return ""
}

// circle must be called with s.mu held.
func (s *Service) circle(circleID string) *circleState {
	c, ok := s.circles[circleID]
	if !ok {
		c = &circleState{known: make(map[string]any)}
		s.circles[circleID] = c
	}
	return c
}

func (s *Service) remember(circleID, key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.circle(circleID)
	c.known[key] = v
	c.lastErr = ""
}

func (s *Service) recordError(circleID, op string, err error) {
	s.logger.Warn("store failure", "circle", circleID, "op", op, "error", err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.circle(circleID).lastErr = fmt.Sprintf("%s: %v", op, err)
}

// snapshot runs load and remembers the result under key. On failure the
// last remembered value is returned flagged as stale.
func snapshot[T any](ctx context.Context, s *Service, circleID, key string, load func(context.Context) (T, error)) Snapshot[T] {
	v, err := load(ctx)
	if err == nil {
		s.remember(circleID, key, v)
		return Snapshot[T]{Data: v}
	}

	s.recordError(circleID, "load "+key, err)
	s.mu.Lock()
	prev, _ := s.circle(circleID).known[key].(T)
	s.mu.Unlock()
	return Snapshot[T]{Data: prev, Stale: true, Error: "failed to load " + key}
}

func (s *Service) broadcast(circleID string, msg websocket.Message) {
	if s.hub != nil {
		s.hub.Broadcast(circleID, msg)
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
