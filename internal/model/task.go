package model

import "time"

type Role string

const (
	RoleSenior   Role = "senior"
	RoleRelative Role = "relative"
)

func (r Role) Valid() bool {
	return r == RoleSenior || r == RoleRelative
}

type TaskType string

const (
	TaskMedication  TaskType = "medication"
	TaskHydration   TaskType = "hydration"
	TaskActivity    TaskType = "activity"
	TaskAppointment TaskType = "appointment"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskMedication, TaskHydration, TaskActivity, TaskAppointment:
		return true
	}
	return false
}

type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodLunch     Period = "lunch"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// Periods lists the day periods in display order.
var Periods = []Period{PeriodMorning, PeriodLunch, PeriodAfternoon, PeriodEvening}

func (p Period) Valid() bool {
	switch p {
	case PeriodMorning, PeriodLunch, PeriodAfternoon, PeriodEvening:
		return true
	}
	return false
}

// Task is a care obligation shared by the whole circle. CompletedAt is set
// exactly when Completed is true.
type Task struct {
	ID            string     `json:"id"`
	CircleID      string     `json:"circle_id"`
	Title         string     `json:"title"`
	Type          TaskType   `json:"type"`
	Period        Period     `json:"period"`
	Time          string     `json:"time"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at"`
	Recurring     bool       `json:"recurring"`
	CreatedByRole Role       `json:"created_by_role"`
	CreatedByName string     `json:"created_by_name"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CircleResetState is the circle's checkIn settings document.
type CircleResetState struct {
	LastResetDate string `json:"last_reset_date"`
}
