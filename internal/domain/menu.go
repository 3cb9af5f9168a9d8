package domain

import "time"

type MenuItemKind string

const (
	MenuItemKindDaily   MenuItemKind = "daily"
	MenuItemKindRegular MenuItemKind = "regular"
)

// MenuItem is one dish on the menu. Staff edit these; students only ever
// see items that are available. Price keeps the catalog's representation
// as-is (see CartLine).
type MenuItem struct {
	ID          string       `bson:"item_id" json:"item_id"`
	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Price       any          `bson:"price,omitempty" json:"price,omitempty"`
	Image       string       `bson:"image,omitempty" json:"image,omitempty"`
	Rating      string       `bson:"rating,omitempty" json:"rating,omitempty"`
	Available   bool         `bson:"available" json:"available"`
	Kind        MenuItemKind `bson:"kind" json:"kind"`
}

// Menu is one published menu document; the newest by date is the current one.
type Menu struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	Date      time.Time  `bson:"date" json:"date"`
	Items     []MenuItem `bson:"items" json:"items"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}
