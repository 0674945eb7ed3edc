package jobs

import (
	"campus-transport-backend/internal/config"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
	"campus-transport-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	users       repository.UserRepository
	stationPool repository.RentalPoolRepository
	eventPool   repository.RentalPoolRepository
	services    *Services
	config      *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Rental    service.RentalService
	Reference service.ReferenceService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	users repository.UserRepository,
	stationPool repository.RentalPoolRepository,
	eventPool repository.RentalPoolRepository,
	services *Services,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		users:       users,
		stationPool: stationPool,
		eventPool:   eventPool,
		services:    services,
		config:      cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ReleaseStaleRentals()
	jr.ReconcileInventory()
	jr.WarmReferenceCache()
}
