package repository

import (
	"context"

	"paws/internal/domain/entity"
)

// ChangeFeed delivers store-level mutation events for watched record kinds.
// Only updates to existing records are reported; inserts and deletes are not.
// Watch calls return immediately and stream events until ctx is cancelled.
type ChangeFeed interface {
	WatchPets(ctx context.Context, fn func(context.Context, *entity.Pet))
	WatchAppointments(ctx context.Context, fn func(context.Context, *entity.Appointment))
}
