package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpapi "campus-transport-backend/internal/api/http"
	"campus-transport-backend/internal/cache"
	"campus-transport-backend/internal/config"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
	fsrepo "campus-transport-backend/internal/repository/firestore"
	"campus-transport-backend/internal/repository/memory"
	"campus-transport-backend/internal/security"
	"campus-transport-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local overrides from .env, if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Campus Transportation Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Store configuration", "type", cfg.Store.Type, "project", cfg.Store.ProjectID)

	ctx := context.Background()

	// Initialize the document store
	var (
		userRepo    repository.UserRepository
		refRepo     repository.ReferenceRepository
		noteRepo    repository.NotificationRepository
		stationPool repository.RentalPoolRepository
		eventPool   repository.RentalPoolRepository
	)
	switch cfg.Store.Type {
	case "firestore":
		client, err := fsrepo.NewClient(ctx, cfg.Store.ProjectID, cfg.Store.CredentialsFile)
		if err != nil {
			logger.Error("Failed to connect to Firestore", "error", err)
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer client.Close()
		store := fsrepo.NewStore(client)
		userRepo = store.UserRepository
		refRepo = store.ReferenceRepository
		noteRepo = store.NotificationRepository
		stationPool = store.StationPool
		eventPool = store.EventPool
		logger.Info("Firestore connection established")
	case "memory":
		store := memory.NewStore()
		userRepo = store.Users
		refRepo = store.Reference
		noteRepo = store.Notifications
		stationPool = store.StationPool
		eventPool = store.EventPool
		logger.Warn("Using in-memory store; data will not survive a restart")
	}

	// Initialize the reference-data cache
	var refCache cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		refCache = redisCache
		logger.Info("Redis cache connected", "addr", cfg.Redis.Addr)
	} else {
		refCache = cache.NewMemoryCache()
		logger.Info("Using in-process reference cache")
	}

	// Initialize the token verifier
	var verifier security.Verifier
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenExpiryMinutes)*time.Minute)
	switch cfg.Auth.Mode {
	case "firebase":
		fbVerifier, err := security.NewFirebaseVerifier(ctx, cfg.Store.ProjectID, cfg.Store.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize Firebase auth", "error", err)
			log.Fatalf("Failed to initialize Firebase auth: %v", err)
		}
		verifier = fbVerifier
		logger.Info("Using Firebase ID token verification")
	case "local":
		verifier = tokenManager
		logger.Warn("Using local JWT verification; for development only")
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	refSvc := service.NewReferenceService(refRepo, refCache)
	rentalSvc := service.NewRentalService(stationPool, eventPool, userRepo, noteRepo, emailSvc, service.RentalConfig{
		FeeKudu:      cfg.Rental.FeeKudu,
		RadiusMeters: cfg.Rental.GeofenceRadiusMeters,
		Stations:     cfg.Stations,
	})
	userSvc := service.NewUserService(userRepo)
	noteSvc := service.NewNotificationService(noteRepo, userRepo, emailSvc, cfg.SendGrid.SecurityEmail)
	authSvc := service.NewAuthService(userRepo, tokenManager, refSvc, service.AuthConfig{
		KuduSeedMax: cfg.Rental.SignupKuduMax,
	})

	// Set up the HTTP façade
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Rental:       rentalSvc,
		Users:        userSvc,
		Auth:         authSvc,
		Reference:    refSvc,
		Notification: noteSvc,
		Verifier:     verifier,
		LocalAuth:    cfg.Auth.Mode == "local",
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Block until interrupted, then drain in-flight requests.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
