package coordination

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Pruner deletes records dated before a YYYY-MM-DD date.
type Pruner interface {
	DeleteBefore(ctx context.Context, date string) (int64, error)
}

// Scheduler periodically runs the daily reset check for every known circle
// and prunes records older than the retention window.
type Scheduler struct {
	mu       sync.RWMutex
	svc      *Service
	progress Pruner
	logger   *slog.Logger
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScheduler creates a scheduler. progress may be nil when the puzzle
// cache is not durable.
func NewScheduler(svc *Service, progress Pruner, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		svc:      svc,
		progress: progress,
		logger:   logger,
		interval: interval,
	}
}

// Start runs one pass immediately, then one per interval.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.Tick(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Tick(ctx)
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Tick runs a single pass.
func (s *Scheduler) Tick(ctx context.Context) {
	circleIDs, err := s.svc.stores.Tasks.CircleIDs(ctx)
	if err != nil {
		s.logger.Error("list circles", "error", err)
		return
	}

	for _, id := range circleIDs {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.svc.CheckAndApplyDailyReset(ctx, id); err != nil {
			s.logger.Error("daily reset", "circle", id, "error", err)
		}
	}

	if err := s.Prune(ctx); err != nil {
		s.logger.Error("prune", "error", err)
	}
}

// Prune removes pings, activity, scores, and puzzle progress older than the
// retention window, and notification latches whose ping has gone stale.
func (s *Scheduler) Prune(ctx context.Context) error {
	st := s.svc.stores
	cutoff := s.svc.clock().Add(-RetentionWindow)
	cutoffDate := cutoff.In(s.svc.loc).Format("2006-01-02")

	pings, err := st.Pings.DeleteBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune pings: %w", err)
	}
	activity, err := st.Activity.DeleteBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune activity: %w", err)
	}
	scores, err := st.Scores.DeleteBefore(ctx, cutoffDate)
	if err != nil {
		return fmt.Errorf("prune scores: %w", err)
	}
	var progress int64
	if s.progress != nil {
		if progress, err = s.progress.DeleteBefore(ctx, cutoffDate); err != nil {
			return fmt.Errorf("prune progress: %w", err)
		}
	}

	latches := s.svc.pruneLatches(s.svc.clock())

	if pings+activity+scores+progress > 0 || latches > 0 {
		s.logger.Info("pruned old records", "pings", pings, "activity", activity, "scores", scores, "progress", progress, "latches", latches)
	}
	return nil
}
