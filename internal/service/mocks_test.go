package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/WMiguel207/snacktrack/internal/cache"
	"github.com/WMiguel207/snacktrack/internal/domain"
	"github.com/WMiguel207/snacktrack/internal/repository"
)

// mockCartRepository keeps carts in memory, one document per id, the way
// the store would.
type mockCartRepository struct {
	m      sync.Mutex
	carts  map[string]*domain.Cart
	nextID int
	err    error // injected on every call when set

	closeErr error // injected on Close only
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: map[string]*domain.Cart{}}
}

func (m *mockCartRepository) GetOrCreate(_ context.Context, ownerID string) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.carts {
		if c.OwnerID == ownerID && c.Status == domain.CartStatusOpen {
			cp := *c
			cp.Items = append([]domain.CartLine{}, c.Items...)
			return &cp, nil
		}
	}
	m.nextID++
	cart := &domain.Cart{
		ID:      fmt.Sprintf("cart-%d", m.nextID),
		OwnerID: ownerID,
		Status:  domain.CartStatusOpen,
		Items:   []domain.CartLine{},
	}
	m.carts[cart.ID] = cart
	cp := *cart
	return &cp, nil
}

func (m *mockCartRepository) GetByID(_ context.Context, cartID string) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.carts[cartID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	cp := *c
	cp.Items = append([]domain.CartLine{}, c.Items...)
	return &cp, nil
}

func (m *mockCartRepository) ReplaceItems(_ context.Context, cartID string, items []domain.CartLine) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	c, ok := m.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}
	c.Items = append([]domain.CartLine{}, items...)
	return nil
}

func (m *mockCartRepository) IncrementLine(_ context.Context, cartID, itemID string, qty int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	c, ok := m.carts[cartID]
	if !ok {
		return repository.ErrLineNotFound
	}
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items[i].Quantity += qty
			return nil
		}
	}
	return repository.ErrLineNotFound
}

func (m *mockCartRepository) PushLine(_ context.Context, cartID string, line domain.CartLine) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	c, ok := m.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}
	// The real push is conditional on the line being absent.
	for _, l := range c.Items {
		if l.ItemID == line.ItemID {
			return repository.ErrLineExists
		}
	}
	c.Items = append(c.Items, line)
	return nil
}

func (m *mockCartRepository) RemoveLine(_ context.Context, cartID, itemID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	c, ok := m.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}
	kept := c.Items[:0]
	for _, l := range c.Items {
		if l.ItemID != itemID {
			kept = append(kept, l)
		}
	}
	c.Items = kept
	return nil
}

func (m *mockCartRepository) ClearItems(_ context.Context, cartID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	c, ok := m.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}
	c.Items = []domain.CartLine{}
	return nil
}

func (m *mockCartRepository) Close(_ context.Context, cartID, reservationID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.closeErr != nil {
		return m.closeErr
	}
	c, ok := m.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}
	c.Status = domain.CartStatusClosed
	c.ReservationID = reservationID
	return nil
}

func (m *mockCartRepository) stored(cartID string) *domain.Cart {
	m.m.Lock()
	defer m.m.Unlock()
	return m.carts[cartID]
}

// mockReservationRepository enforces the unique cart_id index the real
// collection has; createErrs injects one error per successive Create call.
type mockReservationRepository struct {
	m          sync.Mutex
	created    []*domain.Reservation
	createErrs []error
	nextID     int
	err        error
}

func (m *mockReservationRepository) Create(_ context.Context, res *domain.Reservation) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return "", err
		}
	}
	for _, existing := range m.created {
		if existing.CartID == res.CartID {
			return "", repository.ErrCartAlreadyReserved
		}
	}
	m.nextID++
	res.ID = fmt.Sprintf("res-%d", m.nextID)
	m.created = append(m.created, res)
	return res.ID, nil
}

func (m *mockReservationRepository) GetByCartID(_ context.Context, cartID string) (*domain.Reservation, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, res := range m.created {
		if res.CartID == cartID {
			cp := *res
			return &cp, nil
		}
	}
	return nil, repository.ErrReservationNotFound
}

func (m *mockReservationRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Reservation, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Reservation
	for _, res := range m.created {
		if res.OwnerID == ownerID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (m *mockReservationRepository) ListUnpublished(_ context.Context, limit int) ([]domain.Reservation, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Reservation
	for _, res := range m.created {
		if !res.Published && len(out) < limit {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (m *mockReservationRepository) MarkPublished(_ context.Context, reservationID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	for _, res := range m.created {
		if res.ID == reservationID {
			res.Published = true
			return nil
		}
	}
	return repository.ErrReservationNotFound
}

type mockMenuRepository struct {
	m    sync.Mutex
	menu *domain.Menu
	err  error
}

func (m *mockMenuRepository) Latest(context.Context) (*domain.Menu, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.menu == nil {
		return nil, repository.ErrMenuNotFound
	}
	cp := *m.menu
	cp.Items = append([]domain.MenuItem{}, m.menu.Items...)
	return &cp, nil
}

func (m *mockMenuRepository) Upsert(_ context.Context, menu *domain.Menu) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.menu = menu
	return nil
}

func (m *mockMenuRepository) SetItemAvailability(_ context.Context, menuID, itemID string, available bool) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.menu == nil || m.menu.ID != menuID {
		return repository.ErrMenuNotFound
	}
	for i := range m.menu.Items {
		if m.menu.Items[i].ID == itemID {
			m.menu.Items[i].Available = available
			return nil
		}
	}
	return repository.ErrMenuNotFound
}

type mockCache struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCache) Get(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return m.err
}

func (m *mockCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	return m.err
}

func (m *mockCache) getCart() *domain.Cart {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.cart
}
