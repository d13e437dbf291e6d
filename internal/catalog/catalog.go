// Package catalog holds the static configuration shared by every client of a
// circle: the offer and request catalogs, the compatibility tables used for
// matching, the default task set and the puzzle word banks.
package catalog

import (
	"fmt"

	"github.com/dukerupert/carecircle/internal/model"
)

type Item struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Emoji string `json:"emoji" yaml:"emoji"`
}

type Celebration struct {
	Emoji   string `json:"emoji" yaml:"emoji"`
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
	CTA     string `json:"cta" yaml:"cta"`
	Action  string `json:"action" yaml:"action"`
}

// OfferPair declares that an offer with OfferID can satisfy a request with RequestID.
type OfferPair struct {
	OfferID     string      `json:"offer_id" yaml:"offer"`
	RequestID   string      `json:"request_id" yaml:"request"`
	Celebration Celebration `json:"celebration" yaml:"celebration"`
}

// StatusPair declares that a member showing Status can satisfy a request with RequestID.
type StatusPair struct {
	Status      model.Status `json:"status" yaml:"status"`
	RequestID   string       `json:"request_id" yaml:"request"`
	Celebration Celebration  `json:"celebration" yaml:"celebration"`
}

type Table struct {
	Offers      []Item       `json:"offers" yaml:"offers"`
	Requests    []Item       `json:"requests" yaml:"requests"`
	OfferPairs  []OfferPair  `json:"offer_pairs" yaml:"offer_pairs"`
	StatusPairs []StatusPair `json:"status_pairs" yaml:"status_pairs"`
}

func (t *Table) Offer(id string) (Item, bool) {
	return findItem(t.Offers, id)
}

func (t *Table) Request(id string) (Item, bool) {
	return findItem(t.Requests, id)
}

func findItem(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Validate reports pairs that reference ids missing from the catalogs.
func (t *Table) Validate() error {
	for _, p := range t.OfferPairs {
		if _, ok := t.Offer(p.OfferID); !ok {
			return fmt.Errorf("offer pair %s/%s: unknown offer %q", p.OfferID, p.RequestID, p.OfferID)
		}
		if _, ok := t.Request(p.RequestID); !ok {
			return fmt.Errorf("offer pair %s/%s: unknown request %q", p.OfferID, p.RequestID, p.RequestID)
		}
	}
	for _, p := range t.StatusPairs {
		if !p.Status.Valid() {
			return fmt.Errorf("status pair %s/%s: unknown status %q", p.Status, p.RequestID, p.Status)
		}
		if _, ok := t.Request(p.RequestID); !ok {
			return fmt.Errorf("status pair %s/%s: unknown request %q", p.Status, p.RequestID, p.RequestID)
		}
	}
	return nil
}

// Dedupe drops pairs that repeat an earlier (offer, request) or (status,
// request) key. The first definition in table order wins. It returns the
// dropped pairs formatted as "a/b".
func (t *Table) Dedupe() []string {
	var dropped []string

	seen := make(map[string]bool)
	offerPairs := t.OfferPairs[:0:0]
	for _, p := range t.OfferPairs {
		key := p.OfferID + "/" + p.RequestID
		if seen[key] {
			dropped = append(dropped, key)
			continue
		}
		seen[key] = true
		offerPairs = append(offerPairs, p)
	}

	seen = make(map[string]bool)
	statusPairs := t.StatusPairs[:0:0]
	for _, p := range t.StatusPairs {
		key := string(p.Status) + "/" + p.RequestID
		if seen[key] {
			dropped = append(dropped, key)
			continue
		}
		seen[key] = true
		statusPairs = append(statusPairs, p)
	}

	t.OfferPairs = offerPairs
	t.StatusPairs = statusPairs
	return dropped
}

// Default returns a fresh copy of the built-in table.
func Default() *Table {
	return &Table{
		Offers:      append([]Item(nil), defaultOffers...),
		Requests:    append([]Item(nil), defaultRequests...),
		OfferPairs:  append([]OfferPair(nil), defaultOfferPairs...),
		StatusPairs: append([]StatusPair(nil), defaultStatusPairs...),
	}
}

var defaultOffers = []Item{
	{ID: "cook", Label: "I can cook a meal", Emoji: "🍲"},
	{ID: "errands", Label: "I can run errands", Emoji: "🛒"},
	{ID: "drive", Label: "I can give a ride", Emoji: "🚗"},
	{ID: "visit", Label: "I can come by", Emoji: "🏠"},
	{ID: "call", Label: "I have time to call", Emoji: "📞"},
	{ID: "tech", Label: "I can help with tech", Emoji: "💻"},
	{ID: "garden", Label: "I can help in the garden", Emoji: "🌱"},
	{ID: "stories", Label: "I have stories to share", Emoji: "📖"},
}

var defaultRequests = []Item{
	{ID: "shop", Label: "I need groceries", Emoji: "🥕"},
	{ID: "meal", Label: "I would love a home-cooked meal", Emoji: "🍽️"},
	{ID: "ride", Label: "I need a ride", Emoji: "🚕"},
	{ID: "company", Label: "I would like some company", Emoji: "☕"},
	{ID: "tech", Label: "My phone or computer needs help", Emoji: "📱"},
	{ID: "garden", Label: "The garden needs work", Emoji: "🌻"},
	{ID: "listen", Label: "I want someone to listen", Emoji: "👂"},
}

var defaultOfferPairs = []OfferPair{
	{OfferID: "cook", RequestID: "shop", Celebration: Celebration{
		Emoji: "🍽️", Title: "Meal plan match!", Message: "Someone can cook and someone needs groceries. Plan a meal together.",
		CTA: "Plan the meal", Action: "plan-meal",
	}},
	{OfferID: "cook", RequestID: "meal", Celebration: Celebration{
		Emoji: "🍲", Title: "Dinner is on!", Message: "A home-cooked meal is on its way.",
		CTA: "Pick a day", Action: "deliver-meal",
	}},
	{OfferID: "errands", RequestID: "shop", Celebration: Celebration{
		Emoji: "🛒", Title: "Shopping trip!", Message: "Groceries are covered. Share the list.",
		CTA: "Share the list", Action: "shopping-trip",
	}},
	{OfferID: "drive", RequestID: "ride", Celebration: Celebration{
		Emoji: "🚗", Title: "Ride sorted!", Message: "A ride is available. Agree on a time.",
		CTA: "Set a time", Action: "schedule-ride",
	}},
	{OfferID: "visit", RequestID: "company", Celebration: Celebration{
		Emoji: "🏠", Title: "Visit time!", Message: "Someone wants company and someone can come by.",
		CTA: "Plan a visit", Action: "plan-visit",
	}},
	{OfferID: "call", RequestID: "company", Celebration: Celebration{
		Emoji: "📞", Title: "Let's talk!", Message: "There is time for a call right now.",
		CTA: "Call now", Action: "schedule-call",
	}},
	{OfferID: "call", RequestID: "listen", Celebration: Celebration{
		Emoji: "👂", Title: "A listening ear", Message: "Someone has time to talk and listen.",
		CTA: "Call now", Action: "schedule-call",
	}},
	{OfferID: "tech", RequestID: "tech", Celebration: Celebration{
		Emoji: "💻", Title: "Tech rescue!", Message: "Help with the phone or computer is available.",
		CTA: "Fix it together", Action: "fix-tech",
	}},
	{OfferID: "garden", RequestID: "garden", Celebration: Celebration{
		Emoji: "🌱", Title: "Garden day!", Message: "The garden gets some love.",
		CTA: "Pick a day", Action: "garden-day",
	}},
	{OfferID: "stories", RequestID: "company", Celebration: Celebration{
		Emoji: "📖", Title: "Story time!", Message: "Good company and good stories.",
		CTA: "Plan a visit", Action: "plan-visit",
	}},
}

var defaultStatusPairs = []StatusPair{
	{Status: model.StatusCoffeeReady, RequestID: "company", Celebration: Celebration{
		Emoji: "☕", Title: "Coffee is ready!", Message: "The coffee is on and company is wanted.",
		CTA: "Come over", Action: "coffee-visit",
	}},
	{Status: model.StatusCoffeeComing, RequestID: "company", Celebration: Celebration{
		Emoji: "☕", Title: "Coffee on the way!", Message: "Someone is bringing coffee.",
		CTA: "Put the kettle on", Action: "coffee-visit",
	}},
	{Status: model.StatusAvailable, RequestID: "ride", Celebration: Celebration{
		Emoji: "🚗", Title: "Free right now!", Message: "Someone is available and could give a ride.",
		CTA: "Ask for a ride", Action: "schedule-ride",
	}},
	{Status: model.StatusAvailable, RequestID: "listen", Celebration: Celebration{
		Emoji: "📞", Title: "Free to talk!", Message: "Someone is available for a chat.",
		CTA: "Call now", Action: "schedule-call",
	}},
}
