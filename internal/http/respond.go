package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/WMiguel207/snacktrack/internal/domain"
	"github.com/WMiguel207/snacktrack/internal/repository"
	"github.com/WMiguel207/snacktrack/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError translates the core's error kinds into HTTP statuses
// so the client can tell a retryable failure from a bad request.
func handleServiceError(w http.ResponseWriter, err error) {
	var storage *repository.StorageError

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
	case errors.Is(err, service.ErrInvalidPickup):
		respondError(w, http.StatusBadRequest, "invalid_pickup", err.Error())
	case errors.Is(err, repository.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "cart_not_found", "cart unavailable, please retry")
	case errors.Is(err, repository.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", "item is not in the cart")
	case errors.Is(err, repository.ErrMenuNotFound):
		respondError(w, http.StatusNotFound, "menu_not_found", "no menu published yet")
	case errors.Is(err, repository.ErrReservationNotFound):
		respondError(w, http.StatusNotFound, "reservation_not_found", "reservation not found")
	case errors.As(err, &storage):
		respondError(w, http.StatusServiceUnavailable, "storage_unavailable", "temporary storage failure, please retry")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
