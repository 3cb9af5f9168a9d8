package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
)

func (s ReservationStatus) String() string {
	return string(s)
}

// Pickup is the slot the user chose for collecting the order at the counter.
type Pickup struct {
	Date string `bson:"date" json:"date"` // YYYY-MM-DD
	Hour string `bson:"hour" json:"hour"` // serving slot, e.g. "12:00"
}

// Reservation is the immutable record created from a finalized cart.
// CartID is an audit link only; the reservation does not depend on the
// cart document still existing.
type Reservation struct {
	ID        string            `bson:"_id,omitempty" json:"id"`
	OwnerID   string            `bson:"owner_id" json:"owner_id"`
	CartID    string            `bson:"cart_id" json:"cart_id"`
	Items     []CartLine        `bson:"items" json:"items"`
	Code      string            `bson:"code" json:"code"`
	Status    ReservationStatus `bson:"status" json:"status"`
	Total     float64           `bson:"total" json:"total"`
	Pickup    Pickup            `bson:"pickup" json:"pickup"`
	Published bool              `bson:"published" json:"-"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}
