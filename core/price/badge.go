package price

import "strings"

type BadgeType string

const (
	BadgeNone     BadgeType = "none"
	BadgeDiscount BadgeType = "discount"
	BadgeOffer    BadgeType = "offer"
)

// Badge is a promotional annotation on a product. A discount badge carries a
// leading integer percentage in Text; an offer badge is a label only.
type Badge struct {
	Type BadgeType `json:"type"`
	Text string    `json:"text"`
}

// NewBadge returns nil for an empty or "none" badge type.
func NewBadge(badgeType, text string) *Badge {
	t := BadgeType(strings.ToLower(strings.TrimSpace(badgeType)))
	if t == "" || t == BadgeNone {
		return nil
	}
	return &Badge{Type: t, Text: text}
}

// Valid reports whether t is one of the known badge types.
func (t BadgeType) Valid() bool {
	switch t {
	case BadgeNone, BadgeDiscount, BadgeOffer:
		return true
	}
	return false
}
