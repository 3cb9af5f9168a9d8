package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/WMiguel207/snacktrack/internal/domain"
	"github.com/WMiguel207/snacktrack/internal/repository"
)

type MenuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// Current returns the latest menu filtered down to what students can
// order: available items of the daily kind.
func (s *MenuService) Current(ctx context.Context) (*domain.Menu, error) {
	menu, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.MenuItem, 0, len(menu.Items))
	for _, item := range menu.Items {
		if item.Available && item.Kind == domain.MenuItemKindDaily {
			visible = append(visible, item)
		}
	}
	menu.Items = visible
	return menu, nil
}

// Save stores a staff-edited menu, assigning ids to new items and
// defaulting unset kinds to daily.
func (s *MenuService) Save(ctx context.Context, menu *domain.Menu) (*domain.Menu, error) {
	for i := range menu.Items {
		if menu.Items[i].ID == "" {
			menu.Items[i].ID = uuid.NewString()
		}
		if menu.Items[i].Kind == "" {
			menu.Items[i].Kind = domain.MenuItemKindDaily
		}
	}
	if menu.Date.IsZero() {
		menu.Date = time.Now()
	}

	if err := s.repo.Upsert(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// SetAvailability flips one item on or off without touching the rest of
// the menu document.
func (s *MenuService) SetAvailability(ctx context.Context, menuID, itemID string, available bool) error {
	return s.repo.SetItemAvailability(ctx, menuID, itemID, available)
}
