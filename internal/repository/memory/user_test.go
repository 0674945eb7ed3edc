package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-transport-backend/internal/domain"
)

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Updates only the given fields", func(t *testing.T) {
		s := NewStore()
		seedUser(t, s, "u1", 50)

		user, err := s.Users.UpdateProfile(ctx, "u1", "Thando", "", "")
		require.NoError(t, err)
		assert.Equal(t, "Thando", user.FirstName)
		assert.Equal(t, "Mokoena", user.LastName)
		assert.Equal(t, "u1@students.example.ac.za", user.Email)
	})

	t.Run("Unknown user", func(t *testing.T) {
		s := NewStore()
		_, err := s.Users.UpdateProfile(ctx, "ghost", "A", "B", "c@example.ac.za")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Reservation landed since the profile was read survives", func(t *testing.T) {
		s := NewStore()
		seedUser(t, s, "u1", 50)
		s.SeedItem(domain.PoolKindStation, domain.InventoryItem{
			ID: "Bus Station", Location: "Bus Station", Availability: 10,
		})

		// The caller reads the profile, then a reservation commits
		// before the profile write lands.
		_, err := s.Users.GetByID(ctx, "u1")
		require.NoError(t, err)
		require.NoError(t, s.StationPool.ReserveUnit(ctx, "Bus Station", "u1", "Bus Station", rentalFee))

		user, err := s.Users.UpdateProfile(ctx, "u1", "Thando", "", "")
		require.NoError(t, err)

		assert.Equal(t, "Thando", user.FirstName)
		require.NotNil(t, user.ActiveItem)
		assert.Equal(t, "Bus Station", *user.ActiveItem)
		assert.Equal(t, int64(40), user.Kudu)

		item, err := s.StationPool.Get(ctx, "Bus Station")
		require.NoError(t, err)
		assert.Equal(t, int64(9), item.Availability)

		// The unit still comes back cleanly afterwards.
		require.NoError(t, s.StationPool.ReleaseUnit(ctx, "Bus Station", "u1", rentalFee))
		user, err = s.Users.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(50), user.Kudu)
		assert.Nil(t, user.ActiveItem)
	})
}
