package catalog

import "github.com/dukerupert/carecircle/internal/model"

// DefaultTasks is the task set seeded into a circle that has no tasks yet.
func DefaultTasks() []model.Task {
	return []model.Task{
		{Title: "Morning medication", Type: model.TaskMedication, Period: model.PeriodMorning, Time: "08:00", Recurring: true},
		{Title: "Glass of water", Type: model.TaskHydration, Period: model.PeriodMorning, Time: "09:00", Recurring: true},
		{Title: "Short walk", Type: model.TaskActivity, Period: model.PeriodLunch, Time: "11:30", Recurring: true},
		{Title: "Glass of water", Type: model.TaskHydration, Period: model.PeriodAfternoon, Time: "15:00", Recurring: true},
		{Title: "Evening medication", Type: model.TaskMedication, Period: model.PeriodEvening, Time: "20:00", Recurring: true},
	}
}

// MedicationKeywords mark a task as daily medication even when it was not
// created with the recurring flag. Matching is case-insensitive.
var MedicationKeywords = []string{
	"medication", "medicine", "meds", "pill", "tablet", "insulin", "vitamin",
	"medicamento", "medicina", "pastilla",
}
