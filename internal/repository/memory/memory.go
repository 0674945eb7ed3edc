// Package memory implements the repositories on in-process maps guarded
// by a single mutex. It backs unit tests and the `store.type: memory`
// development mode; the one-writer-at-a-time lock gives the same
// all-or-nothing Reserve/Release guarantee the Firestore transactions do.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/repository"
)

type Store struct {
	mu            sync.RWMutex
	users         map[string]*domain.UserAccount
	pools         map[domain.PoolKind]map[string]*domain.InventoryItem
	reference     map[string][]domain.ReferenceDoc
	notifications map[string]*domain.Notification

	Users         repository.UserRepository
	Reference     repository.ReferenceRepository
	Notifications repository.NotificationRepository
	StationPool   repository.RentalPoolRepository
	EventPool     repository.RentalPoolRepository
}

func NewStore() *Store {
	s := &Store{
		users: make(map[string]*domain.UserAccount),
		pools: map[domain.PoolKind]map[string]*domain.InventoryItem{
			domain.PoolKindStation: {},
			domain.PoolKindEvent:   {},
		},
		reference:     make(map[string][]domain.ReferenceDoc),
		notifications: make(map[string]*domain.Notification),
	}
	s.Users = &userRepository{store: s}
	s.Reference = &referenceRepository{store: s}
	s.Notifications = &notificationRepository{store: s}
	s.StationPool = &poolRepository{store: s, kind: domain.PoolKindStation}
	s.EventPool = &poolRepository{store: s, kind: domain.PoolKindEvent}
	return s
}

// SeedItem loads an inventory item, replacing any existing document with
// the same id. Test and dev-mode setup helper.
func (s *Store) SeedItem(kind domain.PoolKind, item domain.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := item
	s.pools[kind][item.ID] = &copied
}

// SeedReference loads a read-only reference collection.
func (s *Store) SeedReference(collection string, docs []domain.ReferenceDoc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reference[collection] = append([]domain.ReferenceDoc(nil), docs...)
}

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, u *domain.UserAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[u.ID]; ok {
		return domain.Errorf(domain.CodeConflict, "user %s already exists", u.ID)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	u.CreatedOn = now
	u.UpdatedOn = now
	copied := *u
	r.store.users[u.ID] = &copied
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserAccount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

// UpdateProfile mutates only the profile fields on the stored document,
// so a reservation committed since the caller's read is never
// overwritten.
func (r *userRepository) UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.UserAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if firstName != "" {
		u.FirstName = firstName
	}
	if lastName != "" {
		u.LastName = lastName
	}
	if email != "" {
		u.Email = email
	}
	u.UpdatedOn = time.Now().UTC().Format(time.RFC3339)
	copied := *u
	return &copied, nil
}

func (r *userRepository) ListWithActiveRentals(ctx context.Context) ([]domain.UserAccount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var users []domain.UserAccount
	for _, u := range r.store.users {
		if u.HasActiveRental() {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type referenceRepository struct {
	store *Store
}

func (r *referenceRepository) ListCollection(ctx context.Context, collection string) ([]domain.ReferenceDoc, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.ReferenceDoc(nil), r.store.reference[collection]...), nil
}

type notificationRepository struct {
	store *Store
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	note.CreatedOn = time.Now().UTC().Format(time.RFC3339)
	copied := *note
	r.store.notifications[note.ID] = &copied
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var notes []domain.Notification
	for _, n := range r.store.notifications {
		if n.UserID == userID {
			notes = append(notes, *n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedOn > notes[j].CreatedOn })
	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n, ok := r.store.notifications[id]
	if !ok {
		return domain.ErrNotFound
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	n.IsRead = true
	return nil
}
