package model

import "time"

type Status string

const (
	StatusHome         Status = "home"
	StatusWork         Status = "work"
	StatusTraveling    Status = "traveling"
	StatusAvailable    Status = "available"
	StatusBusy         Status = "busy"
	StatusCoffeeReady  Status = "coffee_ready"
	StatusCoffeeComing Status = "coffee_coming"
	StatusGood         Status = "good"
)

func (s Status) Valid() bool {
	switch s {
	case StatusHome, StatusWork, StatusTraveling, StatusAvailable, StatusBusy,
		StatusCoffeeReady, StatusCoffeeComing, StatusGood:
		return true
	}
	return false
}

// MemberStatus is the latest status written by a member. UserID doubles as
// the document id.
type MemberStatus struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Role      Role      `json:"role"`
	UpdatedAt time.Time `json:"updated_at"`
}
