package memory

import (
	"context"
	"sort"
	"time"

	"campus-transport-backend/internal/domain"
)

type poolRepository struct {
	store *Store
	kind  domain.PoolKind
}

func (r *poolRepository) Kind() domain.PoolKind { return r.kind }

func (r *poolRepository) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.pools[r.kind][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *poolRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	items := make([]domain.InventoryItem, 0, len(r.store.pools[r.kind]))
	for _, item := range r.store.pools[r.kind] {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// ReserveUnit performs the availability check, the decrement, the user
// assignment, and the kudu debit under one lock, so concurrent calls on
// the last unit serialize into one success and one ErrUnavailable.
func (r *poolRepository) ReserveUnit(ctx context.Context, itemID, userID, location string, fee int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.pools[r.kind][itemID]
	if !ok {
		return domain.ErrNotFound
	}
	if item.Availability <= 0 {
		return domain.ErrUnavailable
	}
	user, ok := r.store.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if user.HasActiveRental() {
		return domain.ErrAlreadyRented
	}
	if user.Kudu < fee {
		return domain.ErrInsufficientFunds
	}

	item.Availability--
	user.ActiveItem = &itemID
	user.ActiveLocation = &location
	user.Kudu -= fee
	user.UpdatedOn = time.Now().UTC().Format(time.RFC3339)
	return nil
}

func (r *poolRepository) ReleaseUnit(ctx context.Context, itemID, userID string, fee int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.pools[r.kind][itemID]
	if !ok {
		return domain.ErrNotFound
	}
	user, ok := r.store.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if user.ActiveItem == nil || *user.ActiveItem != itemID {
		return domain.Errorf(domain.CodeNotFound, "no active rental for item %s", itemID)
	}

	item.Availability++
	user.ActiveItem = nil
	user.ActiveLocation = nil
	user.Kudu += fee
	user.UpdatedOn = time.Now().UTC().Format(time.RFC3339)
	return nil
}
