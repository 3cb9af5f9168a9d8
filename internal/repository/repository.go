package repository

import (
	"context"

	"github.com/WMiguel207/snacktrack/internal/domain"
)

// The interfaces live on the consumer side; the MongoDB implementations
// below them are one choice of backing store.

// CartRepository persists the per-owner open cart. Every write is either
// an atomic field operation or a full replacement of the item list, so a
// retried call with the same arguments lands in the same state.
type CartRepository interface {
	// GetOrCreate returns the owner's open cart, creating an empty one
	// when none exists.
	GetOrCreate(ctx context.Context, ownerID string) (*domain.Cart, error)
	GetByID(ctx context.Context, cartID string) (*domain.Cart, error)
	// ReplaceItems overwrites the whole line list (idempotent point-write).
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartLine) error
	// IncrementLine bumps the quantity of an existing line atomically at
	// the store, so concurrent increments cannot lose updates.
	IncrementLine(ctx context.Context, cartID, itemID string, qty int) error
	PushLine(ctx context.Context, cartID string, line domain.CartLine) error
	RemoveLine(ctx context.Context, cartID, itemID string) error
	ClearItems(ctx context.Context, cartID string) error
	// Close marks the cart closed and records the reservation it became.
	Close(ctx context.Context, cartID, reservationID string) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (string, error)
	GetByCartID(ctx context.Context, cartID string) (*domain.Reservation, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error)
	ListUnpublished(ctx context.Context, limit int) ([]domain.Reservation, error)
	MarkPublished(ctx context.Context, reservationID string) error
}

type MenuRepository interface {
	Latest(ctx context.Context) (*domain.Menu, error)
	Upsert(ctx context.Context, menu *domain.Menu) error
	SetItemAvailability(ctx context.Context, menuID, itemID string, available bool) error
}
