// Package firestore implements the repositories on Cloud Firestore, the
// document store the campus transportation app runs against in
// production. Reserve/Release are Firestore transactions so the
// inventory counter and the user assignment move together.
package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/repository"
)

// Collection names as they exist in the production Firestore project.
const (
	CollectionUsers         = "Users"
	CollectionInventory     = "Rental Station Inventory"
	CollectionEvents        = "Events"
	CollectionSchedules     = "Transportation Schedules"
	CollectionBuildings     = "Buildings"
	CollectionNotifications = "Notifications"
)

type Store struct {
	client *firestore.Client
	repository.UserRepository
	repository.ReferenceRepository
	repository.NotificationRepository
	StationPool repository.RentalPoolRepository
	EventPool   repository.RentalPoolRepository
}

// NewClient initializes the Firebase app and returns its Firestore
// client. credentialsFile may be empty, in which case application
// default credentials are used.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	conf := &firebase.Config{ProjectID: projectID}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, err
	}
	return app.Firestore(ctx)
}

func NewStore(client *firestore.Client) *Store {
	users := NewUserRepository(client)
	return &Store{
		client:                 client,
		UserRepository:         users,
		ReferenceRepository:    NewReferenceRepository(client),
		NotificationRepository: NewNotificationRepository(client),
		StationPool:            NewPoolRepository(client, domain.PoolKindStation, CollectionInventory, users),
		EventPool:              NewPoolRepository(client, domain.PoolKindEvent, CollectionEvents, users),
	}
}

func (s *Store) Close() error { return s.client.Close() }

// notFound reports whether err is the Firestore missing-document error.
func notFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// asDomain maps a raw Firestore error; domain errors pass through so
// transaction bodies can fail with the right code.
func asDomain(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if notFound(err) {
		return domain.ErrNotFound
	}
	return domain.StoreError(op, err)
}
