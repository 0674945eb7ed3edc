package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
)

type userRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Create(ctx context.Context, u *domain.UserAccount) error {
	now := time.Now().UTC().Format(time.RFC3339)
	u.CreatedOn = now
	u.UpdatedOn = now
	_, err := r.client.Collection(CollectionUsers).Doc(u.ID).Create(ctx, u)
	if err != nil {
		logger.Error("Failed to create user document", "user_id", u.ID, "error", err)
		return asDomain("create user", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserAccount, error) {
	snap, err := r.client.Collection(CollectionUsers).Doc(id).Get(ctx)
	if err != nil {
		return nil, asDomain("get user", err)
	}
	return userFromSnap(snap)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	iter := r.client.Collection(CollectionUsers).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, asDomain("query user by email", err)
	}
	return userFromSnap(snap)
}

// UpdateProfile patches only the named profile fields. A whole-document
// Set here could overwrite a reservation committed between the caller's
// read and this write, so the rental fields are never touched.
func (r *userRepository) UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.UserAccount, error) {
	updates := []firestore.Update{
		{Path: "updatedOn", Value: time.Now().UTC().Format(time.RFC3339)},
	}
	if firstName != "" {
		updates = append(updates, firestore.Update{Path: "firstName", Value: firstName})
	}
	if lastName != "" {
		updates = append(updates, firestore.Update{Path: "lastName", Value: lastName})
	}
	if email != "" {
		updates = append(updates, firestore.Update{Path: "email", Value: email})
	}

	logger.StoreCall("UPDATE", CollectionUsers, "user_id", id, "fields", len(updates)-1)
	_, err := r.client.Collection(CollectionUsers).Doc(id).Update(ctx, updates)
	logger.StoreResult("UPDATE", err, "user_id", id)
	if err != nil {
		return nil, asDomain("update user profile", err)
	}
	return r.GetByID(ctx, id)
}

// ListWithActiveRentals queries for accounts whose activeItem is set.
// The range filter matches any non-empty string and skips documents
// where the field is absent or null.
func (r *userRepository) ListWithActiveRentals(ctx context.Context) ([]domain.UserAccount, error) {
	logger.StoreCall("QUERY", CollectionUsers, "filter", "activeItem set")
	snaps, err := r.client.Collection(CollectionUsers).Where("activeItem", ">", "").Documents(ctx).GetAll()
	logger.StoreResult("QUERY", err, "documents", len(snaps))
	if err != nil {
		return nil, asDomain("list active rentals", err)
	}
	users := make([]domain.UserAccount, 0, len(snaps))
	for _, snap := range snaps {
		u, err := userFromSnap(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func userFromSnap(snap *firestore.DocumentSnapshot) (*domain.UserAccount, error) {
	u := &domain.UserAccount{}
	if err := snap.DataTo(u); err != nil {
		return nil, domain.StoreError("decode user", err)
	}
	u.ID = snap.Ref.ID
	return u, nil
}
