package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/utils"
)

func newRentalFixture() (*MockPool, *MockPool, *MockUserRepo, *MockNotificationRepo, *MockEmailService, RentalService) {
	stationPool := &MockPool{kind: domain.PoolKindStation}
	eventPool := &MockPool{kind: domain.PoolKindEvent}
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := NewRentalService(stationPool, eventPool, userRepo, noteRepo, emailSvc, RentalConfig{
		FeeKudu:      10,
		RadiusMeters: 200,
		Stations: []domain.Station{
			{Name: "Bus Station", Latitude: -26.191884, Longitude: 28.026503},
		},
	})
	return stationPool, eventPool, userRepo, noteRepo, emailSvc, svc
}

func TestReserve(t *testing.T) {
	ctx := context.Background()
	user := &domain.UserAccount{ID: "u1", FirstName: "Thandi", Email: "thandi@example.ac.za", Kudu: 40}

	t.Run("Targets the station pool and sends receipts", func(t *testing.T) {
		stationPool, eventPool, userRepo, noteRepo, emailSvc, svc := newRentalFixture()
		stationPool.On("ReserveUnit", ctx, "scooter-7", "u1", "Bus Station", int64(10)).Return(nil)
		userRepo.On("GetByID", ctx, "u1").Return(user, nil)
		noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == "u1" && n.Kind == domain.NotificationKindRentalReceipt
		})).Return(nil)
		emailSvc.On("SendRentalReceipt", ctx, "thandi@example.ac.za", "Thandi", "scooter-7", "Bus Station", int64(10)).Return(nil)

		err := svc.Reserve(ctx, "u1", "scooter-7", "Bus Station")
		require.NoError(t, err)
		stationPool.AssertExpectations(t)
		noteRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
		eventPool.AssertNotCalled(t, "ReserveUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Pool failure propagates and skips receipts", func(t *testing.T) {
		stationPool, _, userRepo, noteRepo, emailSvc, svc := newRentalFixture()
		stationPool.On("ReserveUnit", ctx, "scooter-7", "u1", "Bus Station", int64(10)).Return(domain.ErrInsufficientFunds)

		err := svc.Reserve(ctx, "u1", "scooter-7", "Bus Station")
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		emailSvc.AssertNotCalled(t, "SendRentalReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Receipt failures do not fail the reservation", func(t *testing.T) {
		stationPool, _, userRepo, noteRepo, emailSvc, svc := newRentalFixture()
		stationPool.On("ReserveUnit", ctx, "scooter-7", "u1", "Bus Station", int64(10)).Return(nil)
		userRepo.On("GetByID", ctx, "u1").Return(user, nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)
		emailSvc.On("SendRentalReceipt", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		err := svc.Reserve(ctx, "u1", "scooter-7", "Bus Station")
		assert.NoError(t, err)
	})
}

func TestEventReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("Targets the event pool", func(t *testing.T) {
		stationPool, eventPool, userRepo, noteRepo, emailSvc, svc := newRentalFixture()
		eventPool.On("ReserveUnit", ctx, "Open Day Shuttle", "u1", "Open Day Shuttle", int64(10)).Return(nil)
		userRepo.On("GetByID", ctx, "u1").Return(&domain.UserAccount{ID: "u1", Email: "t@example.ac.za"}, nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendRentalReceipt", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		err := svc.EventReserve(ctx, "u1", "Open Day Shuttle", "Open Day Shuttle")
		require.NoError(t, err)
		eventPool.AssertExpectations(t)
		stationPool.AssertNotCalled(t, "ReserveUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRelease(t *testing.T) {
	ctx := context.Background()
	user := &domain.UserAccount{ID: "u1", FirstName: "Thandi", Email: "thandi@example.ac.za"}

	t.Run("Releases from the station pool", func(t *testing.T) {
		stationPool, _, userRepo, noteRepo, emailSvc, svc := newRentalFixture()
		stationPool.On("ReleaseUnit", ctx, "scooter-7", "u1", int64(10)).Return(nil)
		userRepo.On("GetByID", ctx, "u1").Return(user, nil)
		noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Kind == domain.NotificationKindReturnReceipt
		})).Return(nil)
		emailSvc.On("SendReturnReceipt", ctx, "thandi@example.ac.za", "Thandi", "scooter-7", int64(10)).Return(nil)

		err := svc.Release(ctx, "u1", "scooter-7")
		require.NoError(t, err)
		stationPool.AssertExpectations(t)
	})

	t.Run("Falls back to the event pool when the item is not a station document", func(t *testing.T) {
		stationPool, eventPool, userRepo, noteRepo, emailSvc, svc := newRentalFixture()
		stationPool.On("ReleaseUnit", ctx, "Open Day Shuttle", "u1", int64(10)).Return(domain.ErrNotFound)
		eventPool.On("Get", ctx, "Open Day Shuttle").Return(&domain.InventoryItem{ID: "Open Day Shuttle"}, nil)
		eventPool.On("ReleaseUnit", ctx, "Open Day Shuttle", "u1", int64(10)).Return(nil)
		userRepo.On("GetByID", ctx, "u1").Return(user, nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendReturnReceipt", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		err := svc.Release(ctx, "u1", "Open Day Shuttle")
		require.NoError(t, err)
		eventPool.AssertExpectations(t)
	})

	t.Run("Keeps the original error when neither pool knows the item", func(t *testing.T) {
		stationPool, eventPool, _, _, _, svc := newRentalFixture()
		stationPool.On("ReleaseUnit", ctx, "ghost", "u1", int64(10)).Return(domain.ErrNotFound)
		eventPool.On("Get", ctx, "ghost").Return(nil, domain.ErrNotFound)

		err := svc.Release(ctx, "u1", "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		eventPool.AssertNotCalled(t, "ReleaseUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Non-NotFound failures do not trigger the fallback", func(t *testing.T) {
		stationPool, eventPool, _, _, _, svc := newRentalFixture()
		stationPool.On("ReleaseUnit", ctx, "scooter-7", "u1", int64(10)).Return(domain.StoreError("pool.release", assert.AnError))

		err := svc.Release(ctx, "u1", "scooter-7")
		assert.Equal(t, domain.CodeStoreError, domain.CodeOf(err))
		eventPool.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestGeofencedRelease(t *testing.T) {
	ctx := context.Background()
	item := &domain.InventoryItem{ID: "scooter-7", Location: "Bus Station", Availability: 4}
	user := &domain.UserAccount{ID: "u1", FirstName: "Thandi", Email: "thandi@example.ac.za"}

	// ~0.0001° of latitude is ~11 m; ~0.002° is ~222 m, outside a 200 m radius.
	const (
		nearLat = -26.191884 + 0.0001
		farLat  = -26.191884 + 0.002
		stnLon  = 28.026503
	)

	t.Run("Releases inside the radius", func(t *testing.T) {
		stationPool, _, userRepo, noteRepo, emailSvc, svc := newRentalFixture()
		stationPool.On("Get", ctx, "scooter-7").Return(item, nil)
		stationPool.On("ReleaseUnit", ctx, "scooter-7", "u1", int64(10)).Return(nil)
		userRepo.On("GetByID", ctx, "u1").Return(user, nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendReturnReceipt", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		err := svc.GeofencedRelease(ctx, "u1", "scooter-7", nearLat, stnLon)
		require.NoError(t, err)
		stationPool.AssertExpectations(t)
	})

	t.Run("Exactly at the station releases", func(t *testing.T) {
		stationPool, _, userRepo, noteRepo, emailSvc, svc := newRentalFixture()
		stationPool.On("Get", ctx, "scooter-7").Return(item, nil)
		stationPool.On("ReleaseUnit", ctx, "scooter-7", "u1", int64(10)).Return(nil)
		userRepo.On("GetByID", ctx, "u1").Return(user, nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendReturnReceipt", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		err := svc.GeofencedRelease(ctx, "u1", "scooter-7", -26.191884, stnLon)
		assert.NoError(t, err)
	})

	t.Run("Outside the radius fails with TOO_FAR and measured distance", func(t *testing.T) {
		stationPool, _, _, _, _, svc := newRentalFixture()
		stationPool.On("Get", ctx, "scooter-7").Return(item, nil)

		err := svc.GeofencedRelease(ctx, "u1", "scooter-7", farLat, stnLon)
		assert.ErrorIs(t, err, domain.ErrTooFar)
		assert.Contains(t, err.Error(), "Bus Station")
		stationPool.AssertNotCalled(t, "ReleaseUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Station without configured coordinates", func(t *testing.T) {
		stationPool, _, _, _, _, svc := newRentalFixture()
		stationPool.On("Get", ctx, "bike-3").Return(&domain.InventoryItem{ID: "bike-3", Location: "Annex"}, nil)

		err := svc.GeofencedRelease(ctx, "u1", "bike-3", -26.19, 28.02)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "Annex")
	})

	t.Run("Non-finite position is rejected before any write", func(t *testing.T) {
		stationPool, _, _, _, _, svc := newRentalFixture()
		stationPool.On("Get", ctx, "scooter-7").Return(item, nil)

		err := svc.GeofencedRelease(ctx, "u1", "scooter-7", math.NaN(), stnLon)
		assert.ErrorIs(t, err, domain.ErrInvalidPosition)
		stationPool.AssertNotCalled(t, "ReleaseUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown item", func(t *testing.T) {
		stationPool, _, _, _, _, svc := newRentalFixture()
		stationPool.On("Get", ctx, "ghost").Return(nil, domain.ErrNotFound)

		err := svc.GeofencedRelease(ctx, "u1", "ghost", -26.19, 28.02)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGeofencedReleaseBoundary(t *testing.T) {
	ctx := context.Background()
	item := &domain.InventoryItem{ID: "scooter-7", Location: "Bus Station", Availability: 4}
	user := &domain.UserAccount{ID: "u1", FirstName: "Thandi", Email: "thandi@example.ac.za"}

	const (
		stnLat = -26.191884
		stnLon = 28.026503
		// Metres per degree of latitude on the sphere the distance
		// calculation uses.
		metersPerDegreeLat = 6371000 * math.Pi / 180
	)

	// positionAt walks due north of the station by the given distance.
	positionAt := func(meters float64) (float64, float64) {
		return stnLat + meters/metersPerDegreeLat, stnLon
	}

	newSvc := func(radius float64, expectRelease bool) (*MockPool, RentalService) {
		stationPool := &MockPool{kind: domain.PoolKindStation}
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		stationPool.On("Get", ctx, "scooter-7").Return(item, nil)
		if expectRelease {
			stationPool.On("ReleaseUnit", ctx, "scooter-7", "u1", int64(10)).Return(nil)
			userRepo.On("GetByID", ctx, "u1").Return(user, nil)
			noteRepo.On("Create", ctx, mock.Anything).Return(nil)
			emailSvc.On("SendReturnReceipt", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		}
		svc := NewRentalService(stationPool, &MockPool{kind: domain.PoolKindEvent}, userRepo, noteRepo, emailSvc, RentalConfig{
			FeeKudu:      10,
			RadiusMeters: radius,
			Stations:     []domain.Station{{Name: "Bus Station", Latitude: stnLat, Longitude: stnLon}},
		})
		return stationPool, svc
	}

	t.Run("One metre inside the radius releases", func(t *testing.T) {
		lat, lon := positionAt(199)
		stationPool, svc := newSvc(200, true)

		err := svc.GeofencedRelease(ctx, "u1", "scooter-7", lat, lon)
		require.NoError(t, err)
		stationPool.AssertExpectations(t)
	})

	t.Run("Exactly at the radius releases", func(t *testing.T) {
		// Pin the radius to the measured distance so the case sits on
		// the boundary regardless of rounding in the spherical math.
		lat, lon := positionAt(200)
		d, err := utils.DistanceMeters(lat, lon, stnLat, stnLon)
		require.NoError(t, err)
		assert.InDelta(t, 200, d, 0.01)

		stationPool, svc := newSvc(d, true)
		err = svc.GeofencedRelease(ctx, "u1", "scooter-7", lat, lon)
		require.NoError(t, err)
		stationPool.AssertExpectations(t)
	})

	t.Run("One metre outside the radius fails", func(t *testing.T) {
		lat, lon := positionAt(201)
		stationPool, svc := newSvc(200, false)

		err := svc.GeofencedRelease(ctx, "u1", "scooter-7", lat, lon)
		assert.ErrorIs(t, err, domain.ErrTooFar)
		stationPool.AssertNotCalled(t, "ReleaseUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Just past the boundary fails", func(t *testing.T) {
		lat, lon := positionAt(200)
		d, err := utils.DistanceMeters(lat, lon, stnLat, stnLon)
		require.NoError(t, err)

		// Any radius short of the measured distance must reject.
		stationPool, svc := newSvc(math.Nextafter(d, 0), false)
		err = svc.GeofencedRelease(ctx, "u1", "scooter-7", lat, lon)
		assert.ErrorIs(t, err, domain.ErrTooFar)
		stationPool.AssertNotCalled(t, "ReleaseUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
