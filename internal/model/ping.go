package model

import "time"

type Ping struct {
	ID         string    `json:"id"`
	CircleID   string    `json:"circle_id"`
	FromName   string    `json:"from_name"`
	FromUserID string    `json:"from_user_id"`
	ToRole     Role      `json:"to_role"`
	SentAt     time.Time `json:"sent_at"`
}
