// Package memory holds in-process repository implementations used by the
// development backend and the test suites. They mirror the ordering and
// scoping guarantees of the Firestore adapters.
package memory

import (
	"context"
	"sort"
	"sync"

	"paws/internal/domain/entity"
	"paws/internal/domain/repository"
)

type messageRepository struct {
	mu       sync.RWMutex
	messages []*entity.Message
}

func NewMessageRepository() repository.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *messageRepository) ListBetween(ctx context.Context, userID, otherUserID string) ([]*entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Message, 0)
	for _, msg := range r.messages {
		if (msg.SenderID == userID && msg.ReceiverID == otherUserID) ||
			(msg.SenderID == otherUserID && msg.ReceiverID == userID) {
			copied := *msg
			result = append(result, &copied)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Message, 0)
	// Walk newest insertion first so equal timestamps keep recency order
	// after the stable sort.
	for i := len(r.messages) - 1; i >= 0; i-- {
		msg := r.messages[i]
		if msg.SenderID == userID || msg.ReceiverID == userID {
			copied := *msg
			result = append(result, &copied)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
