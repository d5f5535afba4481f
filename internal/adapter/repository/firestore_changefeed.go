package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"paws/internal/domain/entity"
	"paws/internal/domain/repository"
	"paws/pkg/logger"
)

// firestoreChangeFeed streams collection snapshots and surfaces modified
// documents only. Adds and deletes are other services' business; this feed
// exists for update-driven notifications.
type firestoreChangeFeed struct {
	client *firestore.Client
}

func NewFirestoreChangeFeed(client *firestore.Client) repository.ChangeFeed {
	return &firestoreChangeFeed{
		client: client,
	}
}

func (f *firestoreChangeFeed) WatchPets(ctx context.Context, fn func(context.Context, *entity.Pet)) {
	go f.watch(ctx, "pets", func(doc *firestore.DocumentSnapshot) {
		var pet entity.Pet
		if err := doc.DataTo(&pet); err != nil {
			logger.Error("changefeed: undecodable pet document %s: %v", doc.Ref.ID, err)
			return
		}
		pet.ID = doc.Ref.ID
		fn(ctx, &pet)
	})
}

func (f *firestoreChangeFeed) WatchAppointments(ctx context.Context, fn func(context.Context, *entity.Appointment)) {
	go f.watch(ctx, "appointments", func(doc *firestore.DocumentSnapshot) {
		var appointment entity.Appointment
		if err := doc.DataTo(&appointment); err != nil {
			logger.Error("changefeed: undecodable appointment document %s: %v", doc.Ref.ID, err)
			return
		}
		appointment.ID = doc.Ref.ID
		fn(ctx, &appointment)
	})
}

func (f *firestoreChangeFeed) watch(ctx context.Context, collection string, handle func(*firestore.DocumentSnapshot)) {
	iter := f.client.Collection(collection).Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("changefeed: %s snapshot stream ended: %v", collection, err)
			}
			return
		}

		for _, change := range snap.Changes {
			if change.Kind != firestore.DocumentModified {
				continue
			}
			handle(change.Doc)
		}
	}
}
