package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/WMiguel207/snacktrack/internal/domain"
)

type MenuService interface {
	Current(ctx context.Context) (*domain.Menu, error)
	Save(ctx context.Context, menu *domain.Menu) (*domain.Menu, error)
	SetAvailability(ctx context.Context, menuID, itemID string, available bool) error
}

type MenuHandler struct {
	menu    MenuService
	timeout time.Duration
}

func NewMenuHandler(menu MenuService, timeout time.Duration) *MenuHandler {
	return &MenuHandler{
		menu:    menu,
		timeout: timeout,
	}
}

// Current returns the latest menu with only the items available today.
func (h *MenuHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	menu, err := h.menu.Current(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, menu)
}

func (h *MenuHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var menu domain.Menu
	if err := json.NewDecoder(r.Body).Decode(&menu); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if len(menu.Items) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_menu", "menu must contain at least one item")
		return
	}

	saved, err := h.menu.Save(ctx, &menu)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

type availabilityRequestDTO struct {
	Available bool `json:"available"`
}

func (h *MenuHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	menuID := chi.URLParam(r, "menu_id")
	itemID := chi.URLParam(r, "item_id")
	if menuID == "" || itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "menu_id and item_id are required")
		return
	}

	var req availabilityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.menu.SetAvailability(ctx, menuID, itemID, req.Available); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
