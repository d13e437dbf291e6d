package model

import "time"

const (
	ActivityPuzzleComplete = "puzzle_complete"
	ActivityPing           = "ping"
)

// Activity is a lightweight feed entry telling other members something happened.
type Activity struct {
	ID          string    `json:"id"`
	CircleID    string    `json:"circle_id"`
	Kind        string    `json:"kind"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}
