package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"campus-transport-backend/internal/cache"
	"campus-transport-backend/internal/config"
	"campus-transport-backend/internal/jobs"
	"campus-transport-backend/internal/logger"
	fsrepo "campus-transport-backend/internal/repository/firestore"
	"campus-transport-backend/internal/scheduler"
	"campus-transport-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'release-stale-rentals', 'reconcile-inventory', 'all-nightly')")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Campus Transportation Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// The job runner always works against the production store.
	client, err := fsrepo.NewClient(ctx, cfg.Store.ProjectID, cfg.Store.CredentialsFile)
	if err != nil {
		logger.Error("Failed to connect to Firestore", "error", err)
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer client.Close()
	store := fsrepo.NewStore(client)
	logger.Info("Firestore connection established")

	var refCache cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		refCache = redisCache
	} else {
		refCache = cache.NewMemoryCache()
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	refSvc := service.NewReferenceService(store.ReferenceRepository, refCache)
	rentalSvc := service.NewRentalService(store.StationPool, store.EventPool, store.UserRepository, store.NotificationRepository, emailSvc, service.RentalConfig{
		FeeKudu:      cfg.Rental.FeeKudu,
		RadiusMeters: cfg.Rental.GeofenceRadiusMeters,
		Stations:     cfg.Stations,
	})

	jobRunner := jobs.NewJobRunner(store.UserRepository, store.StationPool, store.EventPool, &jobs.Services{
		Rental:    rentalSvc,
		Reference: refSvc,
	}, cfg)

	// One-shot mode for manual runs and debugging
	if *runOnce != "" {
		switch *runOnce {
		case "release-stale-rentals":
			jobRunner.ReleaseStaleRentals()
		case "reconcile-inventory":
			jobRunner.ReconcileInventory()
		case "warm-reference-cache":
			jobRunner.WarmReferenceCache()
		case "all-nightly":
			jobRunner.RunAllNightlyJobs()
		default:
			logger.Error("Unknown job name", "job", *runOnce)
			os.Exit(1)
		}
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Run until interrupted
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down cronjob runner...")
	time.Sleep(100 * time.Millisecond)
}
