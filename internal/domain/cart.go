package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type CartStatus string

const (
	CartStatusOpen   CartStatus = "open"
	CartStatusClosed CartStatus = "closed"
)

func (s CartStatus) String() string {
	return string(s)
}

// Cart is the per-user collection of selected items awaiting checkout.
// One open cart per owner at a time; a cart is closed exactly once, when
// it is finalized into a reservation.
type Cart struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	OwnerID       string     `bson:"owner_id" json:"owner_id"`
	Status        CartStatus `bson:"status" json:"status"`
	Items         []CartLine `bson:"items" json:"items"`
	ReservationID string     `bson:"reservation_id,omitempty" json:"reservation_id,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// CartLine carries a denormalized snapshot of a menu item taken at add
// time, so later catalog edits do not change what is already in the cart.
// Price stays in whatever representation the catalog had (number or
// display string); pricing.Normalize canonicalizes it where amounts are
// computed.
type CartLine struct {
	ItemID   string `bson:"item_id" json:"item_id"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Price    any    `bson:"price,omitempty" json:"price,omitempty"`
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// Clean normalizes a line before it is stored: blank strings and explicit
// nulls are zeroed so that, combined with the omitempty tags, half-populated
// fields never reach the document store.
func (l CartLine) Clean() CartLine {
	l.ItemID = strings.TrimSpace(l.ItemID)
	l.Name = strings.TrimSpace(l.Name)
	l.Image = strings.TrimSpace(l.Image)
	switch l.Price.(type) {
	case nil, primitive.Null:
		l.Price = nil
	}
	return l
}

// MergeLines merges an incoming item snapshot into an existing line list
// and returns the new list; it never persists anything. A line with the
// same item id gets its quantity incremented and keeps every other stored
// field, so the price snapshot taken at first add wins. Unknown items are
// appended with the given quantity.
func MergeLines(lines []CartLine, incoming CartLine, qty int) ([]CartLine, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	incoming = incoming.Clean()

	merged := make([]CartLine, len(lines))
	copy(merged, lines)

	for i, line := range merged {
		if line.ItemID != incoming.ItemID {
			continue
		}
		current := line.Quantity
		if current <= 0 {
			// Legacy documents may miss the quantity field.
			current = 1
		}
		merged[i].Quantity = current + qty
		return merged, nil
	}

	incoming.Quantity = qty
	return append(merged, incoming), nil
}

// CleanLines re-normalizes a whole snapshot, e.g. before it is copied
// into a reservation.
func CleanLines(lines []CartLine) []CartLine {
	cleaned := make([]CartLine, 0, len(lines))
	for _, l := range lines {
		cleaned = append(cleaned, l.Clean())
	}
	return cleaned
}
