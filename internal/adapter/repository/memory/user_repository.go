package memory

import (
	"context"
	"sync"

	"paws/internal/domain/entity"
	"paws/pkg/errors"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*entity.User),
	}
}

// Put seeds or replaces an identity record.
func (r *UserRepository) Put(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	r.users[user.ID] = &copied
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("user", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			copied := *user
			result = append(result, &copied)
		}
	}
	return result, nil
}
