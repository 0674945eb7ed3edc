package service

import (
	"context"
	"encoding/json"
	"time"

	"campus-transport-backend/internal/cache"
	"campus-transport-backend/internal/repository"
)

const (
	collectionSchedules = "Transportation Schedules"
	collectionBuildings = "Buildings"

	referenceTTL = 15 * time.Minute
)

// referenceService serves the read-only collections through the
// read-through cache. Rental pools are never cached: their availability
// counts change with every reservation.
type referenceService struct {
	refRepo repository.ReferenceRepository
	cache   cache.Cache
}

func NewReferenceService(refRepo repository.ReferenceRepository, c cache.Cache) ReferenceService {
	return &referenceService{refRepo: refRepo, cache: c}
}

func (s *referenceService) ListSchedules(ctx context.Context) ([]byte, error) {
	return s.list(ctx, collectionSchedules)
}

func (s *referenceService) ListBuildings(ctx context.Context) ([]byte, error) {
	return s.list(ctx, collectionBuildings)
}

func (s *referenceService) list(ctx context.Context, collection string) ([]byte, error) {
	return s.cache.GetOrFetch(ctx, collection, referenceTTL, func(ctx context.Context) ([]byte, error) {
		docs, err := s.refRepo.ListCollection(ctx, collection)
		if err != nil {
			return nil, err
		}
		return json.Marshal(docs)
	})
}

func (s *referenceService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
