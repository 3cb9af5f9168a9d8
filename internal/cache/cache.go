package cache

import (
	"context"
	"errors"

	"github.com/WMiguel207/snacktrack/internal/domain"
)

// CartCache holds the owner's open cart between reads; every cart
// mutation invalidates it.
type CartCache interface {
	Get(ctx context.Context, ownerID string) (*domain.Cart, error)
	Set(ctx context.Context, ownerID string, cart *domain.Cart) error
	Delete(ctx context.Context, ownerID string) error
}

var ErrCacheMiss = errors.New("cache miss")
