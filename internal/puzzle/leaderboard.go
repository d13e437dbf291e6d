package puzzle

import (
	"sort"

	"github.com/dukerupert/carecircle/internal/model"
)

var medals = []string{"🥇", "🥈", "🥉"}

type Ranked struct {
	model.LeaderboardEntry
	Rank  int    `json:"rank"`
	Medal string `json:"medal,omitempty"`
}

// Rank keeps the entries for date, orders them by score descending with
// earlier submissions first on ties, and assigns positional medals.
func Rank(entries []model.LeaderboardEntry, date string) []Ranked {
	var today []model.LeaderboardEntry
	for _, e := range entries {
		if e.Date == date {
			today = append(today, e)
		}
	}

	sort.SliceStable(today, func(i, j int) bool {
		if today[i].Score != today[j].Score {
			return today[i].Score > today[j].Score
		}
		return today[i].CreatedAt.Before(today[j].CreatedAt)
	})

	ranked := make([]Ranked, len(today))
	for i, e := range today {
		ranked[i] = Ranked{LeaderboardEntry: e, Rank: i + 1}
		if i < len(medals) {
			ranked[i].Medal = medals[i]
		}
	}
	return ranked
}
