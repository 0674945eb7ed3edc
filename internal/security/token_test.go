package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip returns the subject", func(t *testing.T) {
		m := NewTokenManager("test-secret", time.Hour)
		token, err := m.GenerateAccessToken("u1", "thandi@example.ac.za")
		require.NoError(t, err)

		uid, err := m.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "u1", uid)
	})

	t.Run("Expired token", func(t *testing.T) {
		m := NewTokenManager("test-secret", time.Nanosecond)
		token, err := m.GenerateAccessToken("u1", "thandi@example.ac.za")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		_, err = m.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		issuer := NewTokenManager("secret-a", time.Hour)
		verifier := NewTokenManager("secret-b", time.Hour)
		token, err := issuer.GenerateAccessToken("u1", "thandi@example.ac.za")
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage token", func(t *testing.T) {
		m := NewTokenManager("test-secret", time.Hour)
		_, err := m.Verify(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
