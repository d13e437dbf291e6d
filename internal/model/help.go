package model

import "time"

type HelpKind string

const (
	KindOffer   HelpKind = "offer"
	KindRequest HelpKind = "request"
)

// HelpItem is an offer or request picked from the catalog. ID is the catalog
// key; DocID identifies the stored document.
type HelpItem struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	Emoji         string    `json:"emoji"`
	CreatedByRole Role      `json:"created_by_role"`
	CreatedByUID  string    `json:"created_by_uid"`
	CreatedByName string    `json:"created_by_name"`
	DocID         string    `json:"doc_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type Offer = HelpItem

type Request = HelpItem
