package repository

import (
	"context"

	"paws/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// ListBetween returns the full bidirectional history between two users,
	// oldest first.
	ListBetween(ctx context.Context, userID, otherUserID string) ([]*entity.Message, error)

	// ListByUser returns every message the user sent or received, newest
	// first.
	ListByUser(ctx context.Context, userID string) ([]*entity.Message, error)
}
