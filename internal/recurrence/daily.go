// Package recurrence decides when a circle's day has rolled over and which
// tasks must be made incomplete again.
package recurrence

import (
	"strings"
	"time"

	"github.com/dukerupert/carecircle/internal/catalog"
	"github.com/dukerupert/carecircle/internal/model"
)

const DateLayout = "2006-01-02"

type Action int

const (
	// ActionNone means the circle was already reset today.
	ActionNone Action = iota
	// ActionBootstrap seeds the default tasks into an empty circle.
	ActionBootstrap
	// ActionInitialize records today for a circle that has tasks but no
	// reset state yet. Nothing is reset.
	ActionInitialize
	// ActionReset clears completion on daily tasks and records today.
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionBootstrap:
		return "bootstrap"
	case ActionInitialize:
		return "initialize"
	case ActionReset:
		return "reset"
	default:
		return "none"
	}
}

type Rules struct {
	Defaults []model.Task
	Keywords []string
}

func DefaultRules() Rules {
	return Rules{
		Defaults: catalog.DefaultTasks(),
		Keywords: catalog.MedicationKeywords,
	}
}

type Decision struct {
	Action Action
	Today  string
	// Seed holds the tasks to create for ActionBootstrap.
	Seed []model.Task
	// Reset holds the ids of tasks to mark incomplete for ActionReset.
	Reset []string
}

// WritesState reports whether the decision stores today as the last reset date.
func (d Decision) WritesState() bool {
	return d.Action != ActionNone
}

// Today formats now as a calendar date in loc. A nil loc uses now's location.
func Today(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return now.Format(DateLayout)
}

// IsDaily reports whether a task comes back every day: it is flagged
// recurring, it is a medication, or its title names a medication.
func IsDaily(t model.Task, keywords []string) bool {
	if t.Recurring || t.Type == model.TaskMedication {
		return true
	}
	title := strings.ToLower(t.Title)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(title, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Plan compares today against the circle's reset state. It is pure; the
// caller seeds a bootstrap in one transaction and applies resets as
// single-document writes.
func Plan(tasks []model.Task, state *model.CircleResetState, today string, rules Rules) Decision {
	d := Decision{Today: today}

	if len(tasks) == 0 {
		d.Action = ActionBootstrap
		d.Seed = append([]model.Task(nil), rules.Defaults...)
		return d
	}

	if state == nil || state.LastResetDate == "" {
		d.Action = ActionInitialize
		return d
	}

	if state.LastResetDate == today {
		return d
	}

	d.Action = ActionReset
	for _, t := range tasks {
		if !IsDaily(t, rules.Keywords) {
			continue
		}
		if t.Completed || t.CompletedAt != nil {
			d.Reset = append(d.Reset, t.ID)
		}
	}
	return d
}

// Apply returns tasks with the decision's resets applied. Tasks not listed
// are returned unchanged.
func Apply(tasks []model.Task, d Decision) []model.Task {
	if d.Action != ActionReset || len(d.Reset) == 0 {
		return tasks
	}
	reset := make(map[string]bool, len(d.Reset))
	for _, id := range d.Reset {
		reset[id] = true
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if reset[t.ID] {
			t.Completed = false
			t.CompletedAt = nil
		}
		out[i] = t
	}
	return out
}
