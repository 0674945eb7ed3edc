package repository

import (
	"context"

	"campus-transport-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.UserAccount) error
	GetByID(ctx context.Context, id string) (*domain.UserAccount, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)

	// UpdateProfile overwrites only the given profile fields, skipping
	// empty ones. The rental fields (activeItem, activeLocation, kudu)
	// are written exclusively by ReserveUnit/ReleaseUnit; touching just
	// the profile fields means a concurrent reservation is never lost.
	UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.UserAccount, error)

	// ListWithActiveRentals returns accounts currently holding an
	// assignment; used by the stale-rental and reconciliation jobs.
	ListWithActiveRentals(ctx context.Context) ([]domain.UserAccount, error)
}

// RentalPoolRepository is the rental pool abstraction: one implementation
// per backend, instantiated once per collection (station inventory,
// events). ReserveUnit and ReleaseUnit are atomic — the availability
// check, the counter update, the user assignment, and the kudu adjustment
// succeed or fail together.
type RentalPoolRepository interface {
	Kind() domain.PoolKind
	Get(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]domain.InventoryItem, error)

	// ReserveUnit decrements availability by one, records the assignment
	// on the user, and debits fee kudu. Fails with ErrNotFound,
	// ErrUnavailable, ErrInsufficientFunds, or ErrAlreadyRented, leaving
	// all state unchanged.
	ReserveUnit(ctx context.Context, itemID, userID, location string, fee int64) error

	// ReleaseUnit increments availability by one, clears the user's
	// assignment, and credits fee kudu. Fails with ErrNotFound if the
	// item or user is absent or the user's assignment is a different
	// item, leaving all state unchanged.
	ReleaseUnit(ctx context.Context, itemID, userID string, fee int64) error
}

// ReferenceRepository serves the read-only reference collections
// (transportation schedules, buildings).
type ReferenceRepository interface {
	ListCollection(ctx context.Context, collection string) ([]domain.ReferenceDoc, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
