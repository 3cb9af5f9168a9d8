package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/WMiguel207/snacktrack/internal/cache"
	"github.com/WMiguel207/snacktrack/internal/domain"
	"github.com/WMiguel207/snacktrack/internal/pricing"
	"github.com/WMiguel207/snacktrack/internal/repository"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
	codeRetries  = 3
)

// PickupHours are the serving-window slots a reservation can target.
var PickupHours = []string{"10:00", "11:00", "12:00", "13:00", "14:00"}

// FinalizeResult is what the user gets back after checkout; the full
// reservation stays server-side.
type FinalizeResult struct {
	ReservationID string `json:"reservation_id"`
	Code          string `json:"code"`
}

type ReservationService struct {
	carts        repository.CartRepository
	reservations repository.ReservationRepository
	cache        cache.CartCache
}

func NewReservationService(carts repository.CartRepository, reservations repository.ReservationRepository, cache cache.CartCache) *ReservationService {
	return &ReservationService{
		carts:        carts,
		reservations: reservations,
		cache:        cache,
	}
}

// Finalize converts the cart into a confirmed reservation with a pickup
// code and closes the cart. Finalizing an already-closed cart returns
// the reservation it became, so retries and duplicate taps are harmless.
func (s *ReservationService) Finalize(ctx context.Context, cartID, ownerID string, pickup domain.Pickup) (*FinalizeResult, error) {
	if err := validatePickup(pickup, time.Now()); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.OwnerID != ownerID {
		return nil, repository.ErrCartNotFound
	}

	if cart.Status == domain.CartStatusClosed {
		return s.existingResult(ctx, cartID)
	}

	items := domain.CleanLines(cart.Items)
	if len(items) == 0 {
		// Allowed for now; produces a zero-total reservation.
		log.Printf("finalizing empty cart %s for owner %s", cartID, ownerID)
	}

	var reservationID, code string
	for attempt := 0; ; attempt++ {
		code = newCode()
		reservationID, err = s.reservations.Create(ctx, &domain.Reservation{
			OwnerID:   ownerID,
			CartID:    cartID,
			Items:     items,
			Code:      code,
			Status:    domain.ReservationStatusConfirmed,
			Total:     snapshotTotal(items),
			Pickup:    pickup,
			CreatedAt: time.Now(),
		})
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrCartAlreadyReserved) {
			// Lost a race with a concurrent finalize of the same cart;
			// the winner's reservation stands.
			return s.existingResult(ctx, cartID)
		}
		if errors.Is(err, repository.ErrDuplicateCode) && attempt < codeRetries {
			continue
		}
		return nil, err
	}

	if errClose := s.carts.Close(ctx, cartID, reservationID); errClose != nil {
		// The reservation is persisted and must not be lost. An open cart
		// left behind is the accepted degraded state: the next finalize
		// attempt hits the cart_id index and lands on this reservation.
		log.Printf("cart %s not closed after reservation %s: %v", cartID, reservationID, errClose)
	}

	s.invalidate(ownerID)

	return &FinalizeResult{ReservationID: reservationID, Code: code}, nil
}

// ListByOwner returns the owner's reservation history, newest first.
func (s *ReservationService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error) {
	return s.reservations.ListByOwner(ctx, ownerID)
}

func (s *ReservationService) existingResult(ctx context.Context, cartID string) (*FinalizeResult, error) {
	res, err := s.reservations.GetByCartID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return &FinalizeResult{ReservationID: res.ID, Code: res.Code}, nil
}

func (s *ReservationService) invalidate(ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, ownerID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

// snapshotTotal sums price * quantity over the cleaned snapshot. Prices
// are normalized here, once, whatever representation the lines carry.
func snapshotTotal(items []domain.CartLine) float64 {
	var total float64
	for _, line := range items {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += pricing.Normalize(line.Price) * float64(qty)
	}
	return total
}

func validatePickup(p domain.Pickup, now time.Time) error {
	day, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return fmt.Errorf("%w: bad date %q", ErrInvalidPickup, p.Date)
	}
	today, _ := time.Parse("2006-01-02", now.Format("2006-01-02"))
	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidPickup, p.Date)
	}
	for _, hour := range PickupHours {
		if p.Hour == hour {
			return nil
		}
	}
	return fmt.Errorf("%w: hour %q is outside serving hours", ErrInvalidPickup, p.Hour)
}

func newCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
