package repository

import (
	"context"

	"paws/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByIDs batch-fetches identity records. Missing ids are skipped, not
	// errors; callers treat enrichment as best-effort.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
}
