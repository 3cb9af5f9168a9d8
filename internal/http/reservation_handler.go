package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/WMiguel207/snacktrack/internal/domain"
	"github.com/WMiguel207/snacktrack/internal/service"
)

type ReservationService interface {
	Finalize(ctx context.Context, cartID, ownerID string, pickup domain.Pickup) (*service.FinalizeResult, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error)
}

type ReservationHandler struct {
	reservations ReservationService
	timeout      time.Duration
}

func NewReservationHandler(reservations ReservationService, timeout time.Duration) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		timeout:      timeout,
	}
}

type CheckoutRequestDTO struct {
	CartID     string `json:"cart_id"`
	PickupDate string `json:"pickup_date"`
	PickupHour string `json:"pickup_hour"`
}

// Checkout finalizes the cart into a reservation and returns the id and
// confirmation code for display.
func (h *ReservationHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := ownerIDFromContext(r.Context())

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CartID == "" {
		respondError(w, http.StatusBadRequest, "invalid_cart_id", "cart_id is required")
		return
	}

	result, err := h.reservations.Finalize(ctx, req.CartID, ownerID, domain.Pickup{
		Date: req.PickupDate,
		Hour: req.PickupHour,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := ownerIDFromContext(r.Context())

	reservations, err := h.reservations.ListByOwner(ctx, ownerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reservations)
}
