package repository

import (
	"context"
	"time"

	"paws/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUser returns all notifications owned by the user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error)

	// MarkRead sets isRead on the notification scoped by both id and owner.
	// An id owned by a different user is a silent no-op, not an error.
	MarkRead(ctx context.Context, id, userID string) error

	// Clear deletes all of a user's notifications, or a single one when id
	// is non-empty.
	Clear(ctx context.Context, userID, id string) error

	// FindByReference looks up a notification of the given type whose Data
	// payload references the entity id under refField, scoped to the user.
	// A non-zero since restricts the match to notifications created after
	// that instant. Returns a NOT_FOUND error when nothing matches.
	FindByReference(ctx context.Context, userID, notificationType, refField, refID string, since time.Time) (*entity.Notification, error)
}
