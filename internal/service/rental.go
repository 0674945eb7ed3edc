package service

import (
	"context"
	"fmt"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
	"campus-transport-backend/internal/utils"
)

// RentalConfig carries the tunables of the rental ledger. The geofence
// radius was observed at both 200 m and 500 m in earlier revisions of the
// system; it is configuration here, defaulting to 200.
type RentalConfig struct {
	FeeKudu      int64
	RadiusMeters float64
	Stations     []domain.Station
}

type rentalService struct {
	stationPool repository.RentalPoolRepository
	eventPool   repository.RentalPoolRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	fee         int64
	radius      float64
	stations    map[string]domain.Station
}

func NewRentalService(
	stationPool repository.RentalPoolRepository,
	eventPool repository.RentalPoolRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	cfg RentalConfig,
) RentalService {
	stations := make(map[string]domain.Station, len(cfg.Stations))
	for _, st := range cfg.Stations {
		stations[st.Name] = st
	}
	return &rentalService{
		stationPool: stationPool,
		eventPool:   eventPool,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		fee:         cfg.FeeKudu,
		radius:      cfg.RadiusMeters,
		stations:    stations,
	}
}

func (s *rentalService) Reserve(ctx context.Context, userID, itemID, location string) error {
	return s.reserve(ctx, s.stationPool, userID, itemID, location)
}

func (s *rentalService) EventReserve(ctx context.Context, userID, eventID, location string) error {
	return s.reserve(ctx, s.eventPool, userID, eventID, location)
}

// reserve is the one reservation path; the station and event endpoints
// differ only in the pool they target.
func (s *rentalService) reserve(ctx context.Context, pool repository.RentalPoolRepository, userID, itemID, location string) error {
	if err := pool.ReserveUnit(ctx, itemID, userID, location, s.fee); err != nil {
		return err
	}

	// Receipts are best effort; the reservation already committed.
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("Reserved but could not load user for receipt", "user", userID, "error", err)
		return nil
	}
	note := &domain.Notification{
		UserID:  userID,
		Kind:    domain.NotificationKindRentalReceipt,
		Title:   "Rental confirmed",
		Message: fmt.Sprintf("You rented %s at %s for %d KuduBucks.", itemID, location, s.fee),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to record rental receipt", "user", userID, "error", err)
	}
	if err := s.emailSvc.SendRentalReceipt(ctx, user.Email, user.FirstName, itemID, location, s.fee); err != nil {
		logger.Warn("Failed to email rental receipt", "user", userID, "error", err)
	}
	return nil
}

func (s *rentalService) Release(ctx context.Context, userID, itemID string) error {
	if err := s.releaseFrom(ctx, userID, itemID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("Released but could not load user for receipt", "user", userID, "error", err)
		return nil
	}
	note := &domain.Notification{
		UserID:  userID,
		Kind:    domain.NotificationKindReturnReceipt,
		Title:   "Rental returned",
		Message: fmt.Sprintf("You returned %s and got %d KuduBucks back.", itemID, s.fee),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to record return receipt", "user", userID, "error", err)
	}
	if err := s.emailSvc.SendReturnReceipt(ctx, user.Email, user.FirstName, itemID, s.fee); err != nil {
		logger.Warn("Failed to email return receipt", "user", userID, "error", err)
	}
	return nil
}

// releaseFrom tries the station pool first and falls back to the event
// pool: the user record keeps only the item id, not which pool issued it.
func (s *rentalService) releaseFrom(ctx context.Context, userID, itemID string) error {
	err := s.stationPool.ReleaseUnit(ctx, itemID, userID, s.fee)
	if err == nil {
		return nil
	}
	if domain.CodeOf(err) != domain.CodeNotFound {
		return err
	}
	if _, eventErr := s.eventPool.Get(ctx, itemID); eventErr != nil {
		return err
	}
	return s.eventPool.ReleaseUnit(ctx, itemID, userID, s.fee)
}

func (s *rentalService) GeofencedRelease(ctx context.Context, userID, itemID string, lat, lon float64) error {
	item, err := s.stationPool.Get(ctx, itemID)
	if err != nil {
		return err
	}
	station, ok := s.stations[item.Location]
	if !ok {
		return domain.Errorf(domain.CodeNotFound, "no coordinates configured for station %q", item.Location)
	}

	distance, err := utils.DistanceMeters(lat, lon, station.Latitude, station.Longitude)
	if err != nil {
		return err
	}
	if distance > s.radius {
		return domain.Errorf(domain.CodeTooFar, "%.0f m from %s, must be within %.0f m", distance, item.Location, s.radius)
	}
	return s.Release(ctx, userID, itemID)
}

func (s *rentalService) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.stationPool.List(ctx)
}

func (s *rentalService) ListEvents(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.eventPool.List(ctx)
}
