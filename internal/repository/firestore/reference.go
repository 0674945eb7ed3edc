package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/sethvargo/go-retry"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
)

type referenceRepository struct {
	client *firestore.Client
}

func NewReferenceRepository(client *firestore.Client) repository.ReferenceRepository {
	return &referenceRepository{client: client}
}

// ListCollection reads a whole reference collection. These are small,
// rarely changing datasets (bus schedules, buildings); transient RPC
// failures are retried with backoff before giving up.
func (r *referenceRepository) ListCollection(ctx context.Context, collection string) ([]domain.ReferenceDoc, error) {
	var snaps []*firestore.DocumentSnapshot

	logger.StoreCall("QUERY", collection)
	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		snaps, err = r.client.Collection(collection).Documents(ctx).GetAll()
		if err != nil {
			logger.Warn("Reference collection read failed, retrying", "collection", collection, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	logger.StoreResult("QUERY", err, "collection", collection, "documents", len(snaps))
	if err != nil {
		return nil, asDomain("list reference collection", err)
	}

	docs := make([]domain.ReferenceDoc, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, domain.ReferenceDoc{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	return docs, nil
}
