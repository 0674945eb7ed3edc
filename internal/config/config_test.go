package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalMemoryConfig = `
server:
  host: "0.0.0.0"
  port: 8080
store:
  type: memory
auth:
  mode: local
  jwt_secret: "0123456789abcdef0123456789abcdef"
`

func TestLoad(t *testing.T) {
	t.Run("Minimal memory config applies defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, minimalMemoryConfig))
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
		assert.Equal(t, int64(10), cfg.Rental.FeeKudu)
		assert.Equal(t, 200.0, cfg.Rental.GeofenceRadiusMeters)
		assert.Equal(t, int64(100), cfg.Rental.SignupKuduMax)
		assert.Equal(t, 24, cfg.Rental.StaleRentalMaxHours)
		assert.Equal(t, 60, cfg.Auth.TokenExpiryMinutes)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.ReleaseStaleRentals)
	})

	t.Run("Environment variables override the file", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load(writeConfig(t, minimalMemoryConfig))
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Stations parse with coordinates", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, minimalMemoryConfig+`
stations:
  - name: "Bus Station"
    lat: -26.191884
    lon: 28.026503
`))
		require.NoError(t, err)
		require.Len(t, cfg.Stations, 1)
		assert.Equal(t, "Bus Station", cfg.Stations[0].Name)
		assert.Equal(t, -26.191884, cfg.Stations[0].Latitude)
	})

	t.Run("Firestore store requires a project id", func(t *testing.T) {
		t.Setenv("FIREBASE_PROJECT_ID", "")
		_, err := Load(writeConfig(t, `
server:
  port: 8080
store:
  type: firestore
auth:
  mode: local
  jwt_secret: "0123456789abcdef0123456789abcdef"
`))
		assert.ErrorContains(t, err, "project id")
	})

	t.Run("Local auth requires a long secret", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
server:
  port: 8080
store:
  type: memory
auth:
  mode: local
  jwt_secret: "short"
`))
		assert.ErrorContains(t, err, "at least 32 characters")
	})

	t.Run("Invalid port", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
server:
  port: 0
store:
  type: memory
auth:
  mode: local
  jwt_secret: "0123456789abcdef0123456789abcdef"
`))
		assert.ErrorContains(t, err, "invalid server port")
	})

	t.Run("Negative fee is rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, minimalMemoryConfig+`
rental:
  fee_kudu: -5
`))
		assert.ErrorContains(t, err, "fee must not be negative")
	})
}
