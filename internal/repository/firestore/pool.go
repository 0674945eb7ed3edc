package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
)

// poolRepository serves one rental pool collection. The station and event
// pools are the same code pointed at different collections.
type poolRepository struct {
	client     *firestore.Client
	kind       domain.PoolKind
	collection string
	users      repository.UserRepository
}

func NewPoolRepository(client *firestore.Client, kind domain.PoolKind, collection string, users repository.UserRepository) repository.RentalPoolRepository {
	return &poolRepository{client: client, kind: kind, collection: collection, users: users}
}

func (r *poolRepository) Kind() domain.PoolKind { return r.kind }

func (r *poolRepository) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, asDomain("get item", err)
	}
	return itemFromSnap(snap)
}

func (r *poolRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	snaps, err := r.client.Collection(r.collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, asDomain("list items", err)
	}
	items := make([]domain.InventoryItem, 0, len(snaps))
	for _, snap := range snaps {
		item, err := itemFromSnap(snap)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// ReserveUnit runs the whole reservation as one Firestore transaction:
// availability check and decrement, assignment write, and kudu debit all
// commit together or not at all. Contended commits are retried by the
// client library, so two racing reservations on the last unit serialize
// into one success and one ErrUnavailable.
func (r *poolRepository) ReserveUnit(ctx context.Context, itemID, userID, location string, fee int64) error {
	itemRef := r.client.Collection(r.collection).Doc(itemID)
	userRef := r.client.Collection(CollectionUsers).Doc(userID)

	logger.StoreCall("TRANSACTION", r.collection, "op", "reserve", "item", itemID, "user", userID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// All reads before writes, per Firestore transaction rules.
		itemSnap, err := tx.Get(itemRef)
		if err != nil {
			return asDomain("get item", err)
		}
		item, err := itemFromSnap(itemSnap)
		if err != nil {
			return err
		}
		if item.Availability <= 0 {
			return domain.ErrUnavailable
		}

		userSnap, err := tx.Get(userRef)
		if err != nil {
			return asDomain("get user", err)
		}
		user, err := userFromSnap(userSnap)
		if err != nil {
			return err
		}
		if user.HasActiveRental() {
			return domain.ErrAlreadyRented
		}
		if user.Kudu < fee {
			return domain.ErrInsufficientFunds
		}

		if err := tx.Update(itemRef, []firestore.Update{
			{Path: "availability", Value: item.Availability - 1},
		}); err != nil {
			return domain.StoreError("decrement availability", err)
		}
		return tx.Update(userRef, []firestore.Update{
			{Path: "activeItem", Value: itemID},
			{Path: "activeLocation", Value: location},
			{Path: "kudu", Value: user.Kudu - fee},
			{Path: "updatedOn", Value: time.Now().UTC().Format(time.RFC3339)},
		})
	})
	logger.StoreResult("TRANSACTION", err, "op", "reserve", "item", itemID)
	if err != nil {
		return asDomain("reserve unit", err)
	}
	logger.Info("Reserved rental unit", "collection", r.collection, "item", itemID, "user", userID)
	return nil
}

// ReleaseUnit is the transactional inverse of ReserveUnit. The user must
// hold an assignment for exactly this item.
func (r *poolRepository) ReleaseUnit(ctx context.Context, itemID, userID string, fee int64) error {
	itemRef := r.client.Collection(r.collection).Doc(itemID)
	userRef := r.client.Collection(CollectionUsers).Doc(userID)

	logger.StoreCall("TRANSACTION", r.collection, "op", "release", "item", itemID, "user", userID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		itemSnap, err := tx.Get(itemRef)
		if err != nil {
			return asDomain("get item", err)
		}
		item, err := itemFromSnap(itemSnap)
		if err != nil {
			return err
		}

		userSnap, err := tx.Get(userRef)
		if err != nil {
			return asDomain("get user", err)
		}
		user, err := userFromSnap(userSnap)
		if err != nil {
			return err
		}
		if user.ActiveItem == nil || *user.ActiveItem != itemID {
			return domain.Errorf(domain.CodeNotFound, "no active rental for item %s", itemID)
		}

		if err := tx.Update(itemRef, []firestore.Update{
			{Path: "availability", Value: item.Availability + 1},
		}); err != nil {
			return domain.StoreError("increment availability", err)
		}
		return tx.Update(userRef, []firestore.Update{
			{Path: "activeItem", Value: firestore.Delete},
			{Path: "activeLocation", Value: firestore.Delete},
			{Path: "kudu", Value: user.Kudu + fee},
			{Path: "updatedOn", Value: time.Now().UTC().Format(time.RFC3339)},
		})
	})
	logger.StoreResult("TRANSACTION", err, "op", "release", "item", itemID)
	if err != nil {
		return asDomain("release unit", err)
	}
	logger.Info("Released rental unit", "collection", r.collection, "item", itemID, "user", userID)
	return nil
}

func itemFromSnap(snap *firestore.DocumentSnapshot) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{}
	if err := snap.DataTo(item); err != nil {
		return nil, domain.StoreError("decode item", err)
	}
	item.ID = snap.Ref.ID
	return item, nil
}
