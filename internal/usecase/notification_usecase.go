package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"paws/internal/domain/entity"
	"paws/internal/domain/repository"
	"paws/pkg/errors"
	"paws/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo}
}

// List returns the user's notifications, newest first.
func (uc *NotificationUseCase) List(ctx context.Context, userID string) ([]*entity.Notification, error) {
	if userID == "" {
		return nil, errors.BadRequest("user id is required", nil)
	}
	return uc.notificationRepo.ListByUser(ctx, userID)
}

// MarkRead marks a single notification as read. Ownership is enforced by the
// repository: a mismatched owner is a silent no-op.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return errors.BadRequest("notification id and user id are required", nil)
	}
	return uc.notificationRepo.MarkRead(ctx, id, userID)
}

// Clear deletes one notification when id is set, otherwise every notification
// the user owns.
func (uc *NotificationUseCase) Clear(ctx context.Context, userID, id string) error {
	if userID == "" {
		return errors.BadRequest("user id is required", nil)
	}
	return uc.notificationRepo.Clear(ctx, userID, id)
}

// Create persists a notification, assigning id and timestamp. It reports
// success rather than returning an error: callers on the push path treat the
// durable record as best-effort and must not fail the push over it.
func (uc *NotificationUseCase) Create(ctx context.Context, notification *entity.Notification) bool {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error("notification: failed to persist %s for user %s: %v", notification.Type, notification.UserID, err)
		return false
	}
	return true
}
