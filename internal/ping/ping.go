// Package ping picks the one incoming "thinking of you" signal a viewer
// should see from the circle's most recent pings.
package ping

import (
	"time"

	"github.com/dukerupert/carecircle/internal/model"
)

const (
	// FreshnessWindow is how long after sending a ping still counts as new.
	FreshnessWindow = 60 * time.Second
	// WindowSize is how many recent pings are read per evaluation.
	WindowSize = 10
	// DisplayDuration is how long a client shows a notification before
	// dismissing it on its own.
	DisplayDuration = 5 * time.Second
)

// Fresh reports whether p qualifies for viewerID at now.
func Fresh(p model.Ping, viewerID string, now time.Time) bool {
	if p.SentAt.IsZero() || p.FromUserID == viewerID {
		return false
	}
	return now.Sub(p.SentAt) <= FreshnessWindow
}

// Current returns the most recent qualifying ping in window, or nil. The
// window does not need to be sorted.
func Current(window []model.Ping, viewerID string, now time.Time) *model.Ping {
	var best *model.Ping
	for i := range window {
		p := window[i]
		if !Fresh(p, viewerID, now) {
			continue
		}
		if best == nil || p.SentAt.After(best.SentAt) {
			best = &p
		}
	}
	return best
}

// Latch holds the notification currently shown to one viewer. A new ping
// replaces it only when its id differs from the last one latched, so
// redelivered snapshots of the same window do not re-trigger.
type Latch struct {
	current  *model.Ping
	lastID   string
	lastSent time.Time
}

// Observe evaluates a fresh window and reports whether the latched
// notification changed.
func (l *Latch) Observe(window []model.Ping, viewerID string, now time.Time) bool {
	candidate := Current(window, viewerID, now)
	if candidate == nil || candidate.ID == l.lastID {
		return false
	}
	l.current = candidate
	l.lastID = candidate.ID
	l.lastSent = candidate.SentAt
	return true
}

// Expired reports whether the last latched ping is past the freshness
// window, or nothing was ever latched. An expired latch behaves exactly
// like a new one and can be discarded.
func (l *Latch) Expired(now time.Time) bool {
	return l.lastID == "" || now.Sub(l.lastSent) > FreshnessWindow
}

// Current returns the latched notification, or nil.
func (l *Latch) Current() *model.Ping {
	if l.current == nil {
		return nil
	}
	p := *l.current
	return &p
}

// Dismiss clears the latched notification. The same ping will not be latched again.
func (l *Latch) Dismiss() {
	l.current = nil
}
