package recurrence

import (
	"testing"
	"time"

	"github.com/dukerupert/carecircle/internal/model"
)

func completedTask(id, title string, typ model.TaskType, recurring bool) model.Task {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return model.Task{ID: id, Title: title, Type: typ, Recurring: recurring, Completed: true, CompletedAt: &at}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 1, 2, 1, 30, 0, 0, time.UTC)
	if got := Today(now, nil); got != "2024-01-02" {
		t.Errorf("Today(utc) = %q, want 2024-01-02", got)
	}

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	if got := Today(now, ny); got != "2024-01-01" {
		t.Errorf("Today(new york) = %q, want 2024-01-01", got)
	}
}

func TestIsDaily(t *testing.T) {
	kw := DefaultRules().Keywords
	tests := []struct {
		name string
		task model.Task
		want bool
	}{
		{"recurring flag", model.Task{Title: "Walk", Type: model.TaskActivity, Recurring: true}, true},
		{"medication type", model.Task{Title: "Blue one", Type: model.TaskMedication}, true},
		{"keyword in title", model.Task{Title: "Take PILLS after lunch", Type: model.TaskActivity}, true},
		{"spanish keyword", model.Task{Title: "Tomar medicamento", Type: model.TaskActivity}, true},
		{"one-off appointment", model.Task{Title: "Dentist", Type: model.TaskAppointment}, false},
	}
	for _, tt := range tests {
		if got := IsDaily(tt.task, kw); got != tt.want {
			t.Errorf("%s: IsDaily = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPlanBootstrapEmptyCircle(t *testing.T) {
	d := Plan(nil, nil, "2024-01-02", DefaultRules())
	if d.Action != ActionBootstrap {
		t.Fatalf("action = %s, want bootstrap", d.Action)
	}
	if len(d.Seed) == 0 {
		t.Error("expected default tasks to seed")
	}
	if len(d.Reset) != 0 {
		t.Errorf("bootstrap should not reset anything, got %v", d.Reset)
	}
}

func TestPlanInitializeWithoutState(t *testing.T) {
	tasks := []model.Task{completedTask("a", "Walk", model.TaskActivity, true)}
	d := Plan(tasks, nil, "2024-01-02", DefaultRules())
	if d.Action != ActionInitialize {
		t.Fatalf("action = %s, want initialize", d.Action)
	}
	if len(d.Reset) != 0 {
		t.Errorf("initialize should not reset anything, got %v", d.Reset)
	}
	if !d.WritesState() {
		t.Error("initialize should write state")
	}
}

func TestPlanSameDayIsNoop(t *testing.T) {
	tasks := []model.Task{completedTask("a", "Walk", model.TaskActivity, true)}
	state := &model.CircleResetState{LastResetDate: "2024-01-02"}
	d := Plan(tasks, state, "2024-01-02", DefaultRules())
	if d.Action != ActionNone || d.WritesState() {
		t.Errorf("got %s, want none without state write", d.Action)
	}
}

func TestPlanRollover(t *testing.T) {
	tasks := []model.Task{
		completedTask("recurring", "Walk", model.TaskActivity, true),
		completedTask("oneoff", "Dentist", model.TaskAppointment, false),
		completedTask("med", "Heart", model.TaskMedication, false),
		completedTask("kw", "Vitamin D", model.TaskHydration, false),
		{ID: "open", Title: "Water", Type: model.TaskHydration, Recurring: true},
	}
	state := &model.CircleResetState{LastResetDate: "2024-01-01"}

	d := Plan(tasks, state, "2024-01-02", DefaultRules())
	if d.Action != ActionReset {
		t.Fatalf("action = %s, want reset", d.Action)
	}
	want := []string{"recurring", "med", "kw"}
	if len(d.Reset) != len(want) {
		t.Fatalf("reset = %v, want %v", d.Reset, want)
	}
	for i := range want {
		if d.Reset[i] != want[i] {
			t.Errorf("reset[%d] = %q, want %q", i, d.Reset[i], want[i])
		}
	}

	after := Apply(tasks, d)
	if after[0].Completed || after[0].CompletedAt != nil {
		t.Error("recurring task should be reset")
	}
	if !after[1].Completed || after[1].CompletedAt == nil {
		t.Error("one-off task should stay completed")
	}
	if !tasks[0].Completed {
		t.Error("Apply must not mutate its input")
	}
}

func TestPlanTwiceSameDayIsIdempotent(t *testing.T) {
	tasks := []model.Task{
		completedTask("recurring", "Walk", model.TaskActivity, true),
		completedTask("oneoff", "Dentist", model.TaskAppointment, false),
	}
	state := &model.CircleResetState{LastResetDate: "2024-01-01"}

	first := Plan(tasks, state, "2024-01-02", DefaultRules())
	tasks = Apply(tasks, first)
	state.LastResetDate = first.Today

	second := Plan(tasks, state, "2024-01-02", DefaultRules())
	if second.Action != ActionNone {
		t.Fatalf("second action = %s, want none", second.Action)
	}
	again := Apply(tasks, second)
	for i := range tasks {
		if again[i].Completed != tasks[i].Completed {
			t.Errorf("task %s changed on second run", tasks[i].ID)
		}
	}
}
