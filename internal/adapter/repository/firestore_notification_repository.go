package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"paws/internal/domain/entity"
	"paws/internal/domain/repository"
	"paws/pkg/errors"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	return err
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, 0, len(docs))
	for _, doc := range docs {
		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, err
		}
		notifications = append(notifications, &notification)
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	doc, err := r.client.Collection("notifications").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return err
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return err
	}
	if notification.UserID != userID {
		return nil
	}

	_, err = doc.Ref.Update(ctx, []firestore.Update{
		{Path: "isRead", Value: true},
	})
	return err
}

func (r *firestoreNotificationRepository) Clear(ctx context.Context, userID, id string) error {
	if id != "" {
		doc, err := r.client.Collection("notifications").Doc(id).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return err
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			return err
		}
		if notification.UserID != userID {
			return nil
		}

		_, err = doc.Ref.Delete(ctx)
		return err
	}

	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return err
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := bw.Delete(doc.Ref); err != nil {
			return err
		}
	}
	bw.End()
	return nil
}

func (r *firestoreNotificationRepository) FindByReference(ctx context.Context, userID, notificationType, refField, refID string, since time.Time) (*entity.Notification, error) {
	query := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("type", "==", notificationType).
		Where("data."+refField, "==", refID)
	if !since.IsZero() {
		query = query.Where("createdAt", ">", since)
	}

	iter := query.Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("notification", nil)
	}
	if err != nil {
		return nil, err
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, err
	}
	return &notification, nil
}
