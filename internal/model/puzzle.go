package model

import "time"

// WordPuzzleProgress is one user's record for one day's puzzle. Published
// is set once the leaderboard entry has been written.
type WordPuzzleProgress struct {
	UserID    string          `json:"user_id"`
	Date      string          `json:"date"`
	Answers   map[string]bool `json:"answers"`
	Score     int             `json:"score"`
	Complete  bool            `json:"complete"`
	Published bool            `json:"published"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type LeaderboardEntry struct {
	CircleID    string    `json:"circle_id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
