package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"campus-transport-backend/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Rental    RentalConfig    `yaml:"rental"`
	Stations  []domain.Station `yaml:"stations"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig selects and configures the document store backend
type StoreConfig struct {
	Type            string `yaml:"type"`             // "firestore" or "memory"
	ProjectID       string `yaml:"project_id"`       // Firebase project
	CredentialsFile string `yaml:"credentials_file"` // Service account JSON; empty uses ADC
}

// RedisConfig configures the reference-data cache. An empty address
// selects the in-process cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AuthConfig selects the token verifier
type AuthConfig struct {
	Mode               string `yaml:"mode"` // "firebase" or "local"
	JWTSecret          string `yaml:"jwt_secret"`
	TokenExpiryMinutes int    `yaml:"token_expiry_minutes"`
}

// SendGridConfig contains email settings
type SendGridConfig struct {
	APIKey        string `yaml:"api_key"`
	FromEmail     string `yaml:"from_email"`
	FromName      string `yaml:"from_name"`
	SecurityEmail string `yaml:"security_email"` // Campus security dispatcher
}

// RentalConfig contains rental ledger settings
type RentalConfig struct {
	FeeKudu              int64   `yaml:"fee_kudu"`
	GeofenceRadiusMeters float64 `yaml:"geofence_radius_meters"`
	SignupKuduMax        int64   `yaml:"signup_kudu_max"`
	StaleRentalMaxHours  int     `yaml:"stale_rental_max_hours"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ReleaseStaleRentals string `yaml:"release_stale_rentals"`
	ReconcileInventory  string `yaml:"reconcile_inventory"`
	WarmReferenceCache  string `yaml:"warm_reference_cache"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Store
	if val := os.Getenv("STORE_TYPE"); val != "" {
		c.Store.Type = val
	}
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Store.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" && c.Store.CredentialsFile == "" {
		c.Store.CredentialsFile = val
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Auth
	if val := os.Getenv("AUTH_MODE"); val != "" {
		c.Auth.Mode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}
	if val := os.Getenv("SECURITY_EMAIL"); val != "" {
		c.SendGrid.SecurityEmail = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Store.Type == "" {
		c.Store.Type = "firestore"
	}
	if c.Auth.Mode == "" {
		c.Auth.Mode = "firebase"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Store validation
	switch c.Store.Type {
	case "firestore":
		if c.Store.ProjectID == "" {
			return fmt.Errorf("firebase project id is required for the firestore store")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store type: %q", c.Store.Type)
	}

	// Auth validation
	switch c.Auth.Mode {
	case "firebase":
		if c.Store.ProjectID == "" {
			return fmt.Errorf("firebase project id is required for firebase auth")
		}
	case "local":
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters for local auth")
		}
	default:
		return fmt.Errorf("unknown auth mode: %q", c.Auth.Mode)
	}
	if c.Auth.TokenExpiryMinutes <= 0 {
		c.Auth.TokenExpiryMinutes = 60
	}

	// Rental defaults. The 200 m geofence radius is the reference value;
	// earlier revisions of the system disagreed between 200 and 500.
	if c.Rental.FeeKudu == 0 {
		c.Rental.FeeKudu = 10
	}
	if c.Rental.FeeKudu < 0 {
		return fmt.Errorf("rental fee must not be negative")
	}
	if c.Rental.GeofenceRadiusMeters == 0 {
		c.Rental.GeofenceRadiusMeters = 200
	}
	if c.Rental.GeofenceRadiusMeters < 0 {
		return fmt.Errorf("geofence radius must not be negative")
	}
	if c.Rental.SignupKuduMax == 0 {
		c.Rental.SignupKuduMax = 100
	}
	if c.Rental.StaleRentalMaxHours == 0 {
		c.Rental.StaleRentalMaxHours = 24
	}

	// Scheduler defaults
	if c.Scheduler.ReleaseStaleRentals == "" {
		c.Scheduler.ReleaseStaleRentals = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.ReconcileInventory == "" {
		c.Scheduler.ReconcileInventory = "0 30 3 * * *" // 3:30 AM UTC
	}
	if c.Scheduler.WarmReferenceCache == "" {
		c.Scheduler.WarmReferenceCache = "0 0 5 * * *" // 5 AM UTC
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
