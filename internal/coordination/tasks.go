package coordination

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/model"
	"github.com/dukerupert/carecircle/internal/recurrence"
	"github.com/dukerupert/carecircle/internal/websocket"
)

var timeOfDayRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// CheckAndApplyDailyReset brings the circle's tasks up to today. Running it
// again on the same day changes nothing.
func (s *Service) CheckAndApplyDailyReset(ctx context.Context, circleID string) (recurrence.Decision, error) {
	s.resetMu.Lock()
	defer s.resetMu.Unlock()

	now := s.clock()
	today := recurrence.Today(now, s.loc)

	tasks, err := s.stores.Tasks.List(ctx, circleID)
	if err != nil {
		s.recordError(circleID, "daily reset", err)
		return recurrence.Decision{}, fmt.Errorf("list tasks: %w", err)
	}
	state, err := s.stores.Settings.ResetState(ctx, circleID)
	if err != nil {
		s.recordError(circleID, "daily reset", err)
		return recurrence.Decision{}, fmt.Errorf("get reset state: %w", err)
	}

	d := recurrence.Plan(tasks, state, today, s.rules)

	switch d.Action {
	case recurrence.ActionBootstrap:
		seed := make([]model.Task, len(d.Seed))
		for i, t := range d.Seed {
			t.CircleID = circleID
			seed[i] = t
		}
		if err := s.stores.Tasks.CreateAll(ctx, seed, now); err != nil {
			s.recordError(circleID, "daily reset", err)
			return d, fmt.Errorf("seed tasks: %w", err)
		}
	case recurrence.ActionReset:
		for _, id := range d.Reset {
			if _, err := s.stores.Tasks.SetCompleted(ctx, circleID, id, false, now); err != nil {
				s.recordError(circleID, "daily reset", err)
				return d, fmt.Errorf("reset task: %w", err)
			}
		}
	}

	if d.WritesState() {
		if err := s.stores.Settings.SetResetState(ctx, circleID, model.CircleResetState{LastResetDate: today}, now); err != nil {
			s.recordError(circleID, "daily reset", err)
			return d, fmt.Errorf("set reset state: %w", err)
		}
	}

	if d.Action == recurrence.ActionBootstrap || len(d.Reset) > 0 {
		s.logger.Info("daily reset applied", "circle", circleID, "action", d.Action.String(), "date", today, "reset", len(d.Reset))
		s.broadcast(circleID, websocket.NewMessage("task", d.Action.String(), "", map[string]any{"date": today}))
	}
	return d, nil
}

func (s *Service) Tasks(ctx context.Context, circleID string) Snapshot[[]model.Task] {
	snap := snapshot(ctx, s, circleID, "tasks", func(ctx context.Context) ([]model.Task, error) {
		return s.stores.Tasks.List(ctx, circleID)
	})
	if snap.Data == nil {
		snap.Data = []model.Task{}
	}
	return snap
}

type TaskInput struct {
	Title     string         `json:"title"`
	Type      model.TaskType `json:"type"`
	Period    model.Period   `json:"period"`
	Time      string         `json:"time"`
	Recurring bool           `json:"recurring"`
}

func (in TaskInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title is required")
	}
	if len(in.Title) > 200 {
		return invalid("title must be 200 characters or fewer")
	}
	if !in.Type.Valid() {
		return invalid("unknown task type %q", in.Type)
	}
	if !in.Period.Valid() {
		return invalid("unknown period %q", in.Period)
	}
	if in.Time != "" && !timeOfDayRegexp.MatchString(in.Time) {
		return invalid("time must be HH:MM")
	}
	return nil
}

func (s *Service) CreateTask(ctx context.Context, m auth.Member, in TaskInput) (*model.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	t, err := s.stores.Tasks.Create(ctx, model.Task{
		CircleID:      m.CircleID,
		Title:         strings.TrimSpace(in.Title),
		Type:          in.Type,
		Period:        in.Period,
		Time:          in.Time,
		Recurring:     in.Recurring,
		CreatedByRole: m.Role,
		CreatedByName: m.Name,
	}, s.clock())
	if err != nil {
		s.recordError(m.CircleID, "create task", err)
		return nil, err
	}

	s.broadcast(m.CircleID, websocket.NewMessage("task", "created", t.ID, nil))
	return t, nil
}

// SetTaskCompleted marks a task done or not done. completedAt follows the flag.
func (s *Service) SetTaskCompleted(ctx context.Context, circleID, id string, completed bool) (*model.Task, error) {
	existing, err := s.stores.Tasks.GetByID(ctx, circleID, id)
	if err != nil {
		s.recordError(circleID, "complete task", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	t, err := s.stores.Tasks.SetCompleted(ctx, circleID, id, completed, s.clock())
	if err != nil {
		s.recordError(circleID, "complete task", err)
		return nil, err
	}

	action := "completed"
	if !completed {
		action = "uncompleted"
	}
	s.broadcast(circleID, websocket.NewMessage("task", action, id, nil))
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, circleID, id string) error {
	existing, err := s.stores.Tasks.GetByID(ctx, circleID, id)
	if err != nil {
		s.recordError(circleID, "delete task", err)
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.stores.Tasks.Delete(ctx, circleID, id); err != nil {
		s.recordError(circleID, "delete task", err)
		return err
	}
	s.broadcast(circleID, websocket.NewMessage("task", "deleted", id, nil))
	return nil
}
