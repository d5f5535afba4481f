package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"paws/internal/domain/entity"
	"paws/internal/domain/repository"
	"paws/pkg/errors"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications []*entity.Notification
}

func NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Notification, 0)
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userID {
			copied := *r.notifications[i]
			result = append(result, &copied)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return nil
}

func (r *notificationRepository) Clear(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.notifications[:0]
	for _, n := range r.notifications {
		remove := n.UserID == userID && (id == "" || n.ID == id)
		if !remove {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

func (r *notificationRepository) FindByReference(ctx context.Context, userID, notificationType, refField, refID string, since time.Time) (*entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.notifications {
		if n.UserID != userID || n.Type != notificationType {
			continue
		}
		if ref, ok := n.Data[refField].(string); !ok || ref != refID {
			continue
		}
		if !since.IsZero() && !n.CreatedAt.After(since) {
			continue
		}
		copied := *n
		return &copied, nil
	}
	return nil, errors.NotFound("notification", nil)
}
