package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"

	"paws/internal/domain/entity"
	"paws/internal/domain/repository"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	return err
}

// ListBetween merges both directions of the pair. Firestore has no OR query
// across field pairs, so each direction is fetched separately and the union
// is sorted in memory.
func (r *firestoreMessageRepository) ListBetween(ctx context.Context, userID, otherUserID string) ([]*entity.Message, error) {
	sent, err := r.fetch(ctx, r.client.Collection("messages").
		Where("senderId", "==", userID).
		Where("receiverId", "==", otherUserID))
	if err != nil {
		return nil, err
	}

	received, err := r.fetch(ctx, r.client.Collection("messages").
		Where("senderId", "==", otherUserID).
		Where("receiverId", "==", userID))
	if err != nil {
		return nil, err
	}

	messages := append(sent, received...)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *firestoreMessageRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Message, error) {
	sent, err := r.fetch(ctx, r.client.Collection("messages").Where("senderId", "==", userID))
	if err != nil {
		return nil, err
	}

	received, err := r.fetch(ctx, r.client.Collection("messages").Where("receiverId", "==", userID))
	if err != nil {
		return nil, err
	}

	messages := append(sent, received...)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *firestoreMessageRepository) fetch(ctx context.Context, query firestore.Query) ([]*entity.Message, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	messages := make([]*entity.Message, 0, len(docs))
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, err
		}
		messages = append(messages, &message)
	}
	return messages, nil
}
