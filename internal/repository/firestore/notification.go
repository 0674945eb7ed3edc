package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
)

type notificationRepository struct {
	client *firestore.Client
}

func NewNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	note.CreatedOn = time.Now().UTC().Format(time.RFC3339)
	ref := r.client.Collection(CollectionNotifications).Doc(note.ID)
	if note.ID == "" {
		ref = r.client.Collection(CollectionNotifications).NewDoc()
		note.ID = ref.ID
	}
	logger.StoreCall("INSERT", CollectionNotifications, "user_id", note.UserID, "kind", note.Kind)
	_, err := ref.Create(ctx, note)
	logger.StoreResult("INSERT", err, "notification_id", note.ID)
	if err != nil {
		return asDomain("create notification", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	q := r.client.Collection(CollectionNotifications).
		Where("userId", "==", userID).
		OrderBy("createdOn", firestore.Desc).
		Limit(limit)

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, asDomain("list notifications", err)
	}

	notes := make([]domain.Notification, 0, len(snaps))
	for _, snap := range snaps {
		var n domain.Notification
		if err := snap.DataTo(&n); err != nil {
			return nil, domain.StoreError("decode notification", err)
		}
		n.ID = snap.Ref.ID
		notes = append(notes, n)
	}
	return notes, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	ref := r.client.Collection(CollectionNotifications).Doc(id)
	snap, err := ref.Get(ctx)
	if err != nil {
		return asDomain("get notification", err)
	}
	var n domain.Notification
	if err := snap.DataTo(&n); err != nil {
		return domain.StoreError("decode notification", err)
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	_, err = ref.Update(ctx, []firestore.Update{{Path: "isRead", Value: true}})
	if err != nil {
		return asDomain("mark notification read", err)
	}
	return nil
}
