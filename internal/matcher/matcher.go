// Package matcher cross-references live offers, requests and member statuses
// against the compatibility tables. Match is a pure function of its inputs;
// it keeps no state between calls.
package matcher

import (
	"sort"

	"github.com/dukerupert/carecircle/internal/catalog"
	"github.com/dukerupert/carecircle/internal/model"
)

type Type string

const (
	TypeOfferRequest  Type = "offer-request"
	TypeStatusRequest Type = "status-request"
)

type ActiveMatch struct {
	Type          Type                `json:"type"`
	Offer         *model.Offer        `json:"offer,omitempty"`
	Request       *model.Request      `json:"request,omitempty"`
	Status        *model.MemberStatus `json:"status,omitempty"`
	Celebration   catalog.Celebration `json:"celebration"`
	IsCrossFamily bool                `json:"is_cross_family,omitempty"`
	IsStatusMatch bool                `json:"is_status_match,omitempty"`
}

// Key identifies the match by the documents it was built from, so callers
// can remember dismissals across recomputation.
func (m ActiveMatch) Key() string {
	var left string
	switch {
	case m.Offer != nil:
		left = "offer:" + m.Offer.DocID
	case m.Status != nil:
		left = "status:" + m.Status.UserID + ":" + string(m.Status.Status)
	}
	var right string
	if m.Request != nil {
		right = "request:" + m.Request.DocID
	}
	return left + "|" + right
}

func (m ActiveMatch) priority() int {
	switch {
	case m.Type == TypeOfferRequest && m.IsCrossFamily:
		return 0
	case m.Type == TypeOfferRequest:
		return 1
	default:
		return 2
	}
}

type Result struct {
	Matches []ActiveMatch `json:"matches"`
	Top     *ActiveMatch  `json:"top_match"`
}

// Surface returns the first match in priority order whose key is not dismissed.
func (r Result) Surface(dismissed map[string]bool) *ActiveMatch {
	for i := range r.Matches {
		if !dismissed[r.Matches[i].Key()] {
			m := r.Matches[i]
			return &m
		}
	}
	return nil
}

// Match computes every active match. Each configured pair contributes at
// most one match; a document may take part in several pairs.
func Match(table *catalog.Table, offers []model.Offer, requests []model.Request, statuses []model.MemberStatus) Result {
	var matches []ActiveMatch
	if table == nil {
		return Result{Matches: []ActiveMatch{}}
	}

	for _, pair := range table.OfferPairs {
		offer, request, ok := pickOfferRequest(pair, offers, requests)
		if !ok {
			continue
		}
		matches = append(matches, ActiveMatch{
			Type:          TypeOfferRequest,
			Offer:         offer,
			Request:       request,
			Celebration:   pair.Celebration,
			IsCrossFamily: offer.CreatedByRole != request.CreatedByRole,
		})
	}

	for _, pair := range table.StatusPairs {
		status, request, ok := pickStatusRequest(pair, statuses, requests)
		if !ok {
			continue
		}
		matches = append(matches, ActiveMatch{
			Type:          TypeStatusRequest,
			Request:       request,
			Status:        status,
			Celebration:   pair.Celebration,
			IsStatusMatch: true,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].priority() < matches[j].priority()
	})

	res := Result{Matches: matches}
	if res.Matches == nil {
		res.Matches = []ActiveMatch{}
	}
	if len(matches) > 0 {
		top := matches[0]
		res.Top = &top
	}
	return res
}

// pickOfferRequest chooses the best (offer, request) combination for pair:
// different roles first, then different creators, then input order.
func pickOfferRequest(pair catalog.OfferPair, offers []model.Offer, requests []model.Request) (*model.Offer, *model.Request, bool) {
	var bestOffer *model.Offer
	var bestRequest *model.Request
	best := -1

	for i := range offers {
		if offers[i].ID != pair.OfferID {
			continue
		}
		for j := range requests {
			if requests[j].ID != pair.RequestID {
				continue
			}
			score := connection(offers[i].CreatedByRole, offers[i].CreatedByUID, requests[j].CreatedByRole, requests[j].CreatedByUID)
			if score > best {
				best = score
				o, r := offers[i], requests[j]
				bestOffer, bestRequest = &o, &r
			}
		}
	}
	return bestOffer, bestRequest, best >= 0
}

func pickStatusRequest(pair catalog.StatusPair, statuses []model.MemberStatus, requests []model.Request) (*model.MemberStatus, *model.Request, bool) {
	var bestStatus *model.MemberStatus
	var bestRequest *model.Request
	best := -1

	for i := range statuses {
		if statuses[i].Status != pair.Status {
			continue
		}
		for j := range requests {
			if requests[j].ID != pair.RequestID {
				continue
			}
			score := connection(statuses[i].Role, statuses[i].UserID, requests[j].CreatedByRole, requests[j].CreatedByUID)
			if score > best {
				best = score
				s, r := statuses[i], requests[j]
				bestStatus, bestRequest = &s, &r
			}
		}
	}
	return bestStatus, bestRequest, best >= 0
}

// connection scores how well two people are connected by a match: 2 for
// different roles, 1 for different people in the same role, 0 for the same person.
func connection(roleA model.Role, uidA string, roleB model.Role, uidB string) int {
	switch {
	case roleA != roleB:
		return 2
	case uidA != uidB:
		return 1
	default:
		return 0
	}
}
