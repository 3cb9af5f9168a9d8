package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/WMiguel207/snacktrack/internal/domain"
)

// CartService is the slice of the cart core this handler needs.
type CartService interface {
	GetCart(ctx context.Context, ownerID string) (*domain.Cart, error)
	AddItem(ctx context.Context, ownerID string, line domain.CartLine, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, ownerID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, ownerID string) (*domain.Cart, error)
}

type CartHandler struct {
	cart    CartService
	timeout time.Duration
}

func NewCartHandler(cart CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
	}
}

// AddItemRequestDTO carries the menu-item snapshot the client took when
// the user tapped add. Price is whatever the catalog had, number or
// display string.
type AddItemRequestDTO struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    json.RawMessage `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := ownerIDFromContext(r.Context())

	cart, err := h.cart.GetCart(ctx, ownerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := ownerIDFromContext(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	cart, err := h.cart.AddItem(ctx, ownerID, domain.CartLine{
		ItemID: req.ItemID,
		Name:   req.Name,
		Price:  decodePrice(req.Price),
		Image:  req.Image,
	}, qty)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := ownerIDFromContext(r.Context())

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	cart, err := h.cart.RemoveItem(ctx, ownerID, itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ownerID := ownerIDFromContext(r.Context())

	cart, err := h.cart.Clear(ctx, ownerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// decodePrice keeps the price in its wire representation: JSON strings
// stay strings, numbers become float64, anything else is dropped.
func decodePrice(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	switch v.(type) {
	case string, float64:
		return v
	default:
		return nil
	}
}
