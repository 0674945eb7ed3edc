package service

import (
	"context"

	"campus-transport-backend/internal/domain"
)

type RentalService interface {
	// Reserve assigns one unit from the station inventory to the user,
	// debiting the flat fee. EventReserve is the same operation against
	// the event pool.
	Reserve(ctx context.Context, userID, itemID, location string) error
	EventReserve(ctx context.Context, userID, eventID, location string) error

	// Release returns the user's active unit, crediting the fee back.
	Release(ctx context.Context, userID, itemID string) error

	// GeofencedRelease releases only when the reported position is
	// within the configured radius of the item's station; otherwise it
	// fails with TOO_FAR and the measured distance.
	GeofencedRelease(ctx context.Context, userID, itemID string, lat, lon float64) error

	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	ListEvents(ctx context.Context) ([]domain.InventoryItem, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserAccount, error)
	UpdateProfile(ctx context.Context, userID, firstName, lastName, email string) (*domain.UserAccount, error)
}

type AuthService interface {
	// Signup creates the account document with a pseudo-random kudu
	// seed and returns an access token (local auth mode).
	Signup(ctx context.Context, firstName, lastName, email, password string) (*domain.UserAccount, string, error)
	Login(ctx context.Context, email, password string) (*domain.UserAccount, string, error)

	// Logout invalidates the reference-data cache, the application's
	// single cache invalidation trigger.
	Logout(ctx context.Context) error
}

type ReferenceService interface {
	ListSchedules(ctx context.Context) ([]byte, error)
	ListBuildings(ctx context.Context) ([]byte, error)
	InvalidateCache(ctx context.Context) error
}

type NotificationService interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error

	// ReportEmergency records an alert for the user and emails campus
	// security with the reported position.
	ReportEmergency(ctx context.Context, userID, message string, lat, lon float64) error
}

type EmailService interface {
	SendRentalReceipt(ctx context.Context, email, name, itemID, location string, fee int64) error
	SendReturnReceipt(ctx context.Context, email, name, itemID string, fee int64) error
	SendEmergencyAlert(ctx context.Context, toEmail, fromName, message, position string) error
}
