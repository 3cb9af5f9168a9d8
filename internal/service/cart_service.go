package service

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/WMiguel207/snacktrack/internal/cache"
	"github.com/WMiguel207/snacktrack/internal/domain"
	"github.com/WMiguel207/snacktrack/internal/repository"
)

type CartService struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
	}
}

// GetCart returns the owner's open cart, creating an empty one on first use.
func (s *CartService) GetCart(ctx context.Context, ownerID string) (*domain.Cart, error) {
	// Use singleflight so concurrent cache misses for the same owner hit
	// the store once.
	v, err, _ := s.sfg.Do(ownerID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, err = s.repo.GetOrCreate(ctx, ownerID)
		if err != nil {
			return nil, err
		}

		// Fill the cache before returning; a background fill could land
		// after a mutation already invalidated the key and pin a stale
		// cart until the TTL runs out.
		if errSet := s.cache.Set(ctx, ownerID, cart); errSet != nil {
			log.Printf("cache set error: %v", errSet)
		}

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem merges a menu-item snapshot into the owner's open cart and
// returns the updated cart. A quantity bump for an existing line is a
// single atomic increment at the store, so a double tap or a second
// device cannot lose a concurrent update.
func (s *CartService) AddItem(ctx context.Context, ownerID string, line domain.CartLine, qty int) (*domain.Cart, error) {
	cart, err := s.repo.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	merged, err := domain.MergeLines(cart.Items, line, qty)
	if err != nil {
		return nil, err
	}

	line = line.Clean()
	if len(merged) > len(cart.Items) {
		line.Quantity = qty
		err = s.repo.PushLine(ctx, cart.ID, line)
		if errors.Is(err, repository.ErrLineExists) {
			// A concurrent add created the line after our read; bump it
			// instead and re-read, since our merged view predates it.
			if err = s.repo.IncrementLine(ctx, cart.ID, line.ItemID, qty); err != nil {
				log.Printf("repo add item error: %v", err)
				return nil, err
			}
			s.invalidate(ownerID)
			return s.repo.GetByID(ctx, cart.ID)
		}
	} else {
		err = s.repo.IncrementLine(ctx, cart.ID, line.ItemID, qty)
	}
	if err != nil {
		log.Printf("repo add item error: %v", err)
		return nil, err
	}

	s.invalidate(ownerID)

	cart.Items = merged
	return cart, nil
}

// RemoveItem deletes one line from the owner's open cart. Removing an
// item that is not there leaves the cart as it is.
func (s *CartService) RemoveItem(ctx context.Context, ownerID, itemID string) (*domain.Cart, error) {
	cart, err := s.repo.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RemoveLine(ctx, cart.ID, itemID); err != nil {
		log.Printf("repo remove item error: %v", err)
		return nil, err
	}

	s.invalidate(ownerID)

	kept := make([]domain.CartLine, 0, len(cart.Items))
	for _, l := range cart.Items {
		if l.ItemID != itemID {
			kept = append(kept, l)
		}
	}
	cart.Items = kept
	return cart, nil
}

// Clear empties the owner's open cart without closing it.
func (s *CartService) Clear(ctx context.Context, ownerID string) (*domain.Cart, error) {
	cart, err := s.repo.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		log.Printf("repo clear cart error: %v", err)
		return nil, err
	}

	s.invalidate(ownerID)

	cart.Items = []domain.CartLine{}
	return cart, nil
}

func (s *CartService) invalidate(ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, ownerID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
