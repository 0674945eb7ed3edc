package jobs

import (
	"context"
	"time"

	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
)

// ReleaseStaleRentals force-returns assignments older than the
// configured maximum age. Riders who never drop a vehicle off would
// otherwise pin a unit (and their deposit) forever.
func (jr *JobRunner) ReleaseStaleRentals() {
	jr.runWithRecovery("ReleaseStaleRentals", func() {
		ctx := context.Background()
		maxAge := time.Duration(jr.config.Rental.StaleRentalMaxHours) * time.Hour
		cutoff := time.Now().UTC().Add(-maxAge)

		users, err := jr.users.ListWithActiveRentals(ctx)
		if err != nil {
			logger.Error("Failed to list active rentals", "error", err)
			return
		}

		count := 0
		for _, user := range users {
			updated, err := time.Parse(time.RFC3339, user.UpdatedOn)
			if err != nil || updated.After(cutoff) {
				continue
			}
			if err := jr.services.Rental.Release(ctx, user.ID, *user.ActiveItem); err != nil {
				logger.Error("Failed to release stale rental",
					"user", user.ID, "item", *user.ActiveItem, "error", err)
				continue
			}
			logger.Info("Released stale rental",
				"user", user.ID, "item", *user.ActiveItem, "held_since", user.UpdatedOn)
			count++
		}
		logger.Info("Stale rental sweep finished", "released", count, "checked", len(users))
	})
}

// ReconcileInventory audits the invariants the legacy writers could
// break: non-negative availability and assignments that point at real
// items. Findings are reported, not silently repaired.
func (jr *JobRunner) ReconcileInventory() {
	jr.runWithRecovery("ReconcileInventory", func() {
		ctx := context.Background()

		for _, pool := range []repository.RentalPoolRepository{jr.stationPool, jr.eventPool} {
			items, err := pool.List(ctx)
			if err != nil {
				logger.Error("Failed to list pool for reconciliation", "pool", pool.Kind(), "error", err)
				continue
			}
			for _, item := range items {
				if item.Availability < 0 {
					logger.Warn("Negative availability detected",
						"pool", pool.Kind(), "item", item.ID, "availability", item.Availability)
				}
			}
		}

		users, err := jr.users.ListWithActiveRentals(ctx)
		if err != nil {
			logger.Error("Failed to list active rentals", "error", err)
			return
		}
		dangling := 0
		for _, user := range users {
			itemID := *user.ActiveItem
			if _, err := jr.stationPool.Get(ctx, itemID); err == nil {
				continue
			}
			if _, err := jr.eventPool.Get(ctx, itemID); err == nil {
				continue
			}
			logger.Warn("Dangling rental assignment", "user", user.ID, "item", itemID)
			dangling++
		}
		logger.Info("Inventory reconciliation finished", "active_rentals", len(users), "dangling", dangling)
	})
}

// WarmReferenceCache pre-fills the reference cache so the first riders
// of the day don't pay the cold read.
func (jr *JobRunner) WarmReferenceCache() {
	jr.runWithRecovery("WarmReferenceCache", func() {
		ctx := context.Background()
		if _, err := jr.services.Reference.ListSchedules(ctx); err != nil {
			logger.Error("Failed to warm schedule cache", "error", err)
		}
		if _, err := jr.services.Reference.ListBuildings(ctx); err != nil {
			logger.Error("Failed to warm buildings cache", "error", err)
		}
	})
}
