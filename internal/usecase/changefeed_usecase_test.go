package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paws/internal/adapter/repository/memory"
	"paws/internal/domain/entity"
	ws "paws/internal/infrastructure/websocket"
)

func newChangeFeedFixture() (*ChangeFeedUseCase, *ws.Manager, *NotificationUseCase) {
	repo := memory.NewNotificationRepository()
	manager := ws.NewManager()
	notifications := NewNotificationUseCase(repo)
	return NewChangeFeedUseCase(repo, notifications, manager), manager, notifications
}

func TestPetUpdateAlwaysPushesToOwner(t *testing.T) {
	uc, manager, notifications := newChangeFeedFixture()
	owner := connect(manager, "alice")

	uc.HandlePetUpdate(context.Background(), &entity.Pet{
		ID:      "pet-1",
		OwnerID: "alice",
		Name:    "Biscuit",
		Status:  "Pending",
	})

	push := nextEvent(t, owner)
	assert.Equal(t, ws.EventPetUpdated, push.Event)
	assert.Equal(t, 0, len(owner.Send))

	stored, err := notifications.List(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Empty(t, stored)
}

func TestPetListedRaisesNotificationOnce(t *testing.T) {
	uc, manager, notifications := newChangeFeedFixture()
	owner := connect(manager, "alice")

	pet := &entity.Pet{ID: "pet-1", OwnerID: "alice", Name: "Biscuit", Status: entity.PetStatusListed}
	uc.HandlePetUpdate(context.Background(), pet)

	assert.Equal(t, ws.EventPetUpdated, nextEvent(t, owner).Event)
	push := nextEvent(t, owner)
	assert.Equal(t, ws.EventNewNotification, push.Event)
	assert.Contains(t, string(push.Data), "Pet Listed!")
	assert.Contains(t, string(push.Data), "Biscuit")

	stored, err := notifications.List(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, entity.NotificationTypePetStatus, stored[0].Type)
	assert.Equal(t, "pet-1", stored[0].Data["petId"])

	// A later edit while still listed must not raise a second notification.
	uc.HandlePetUpdate(context.Background(), pet)
	assert.Equal(t, ws.EventPetUpdated, nextEvent(t, owner).Event)
	assert.Equal(t, 0, len(owner.Send))

	stored, _ = notifications.List(context.Background(), "alice")
	assert.Len(t, stored, 1)
}

func TestPetListedDedupSurvivesReadMarking(t *testing.T) {
	uc, manager, notifications := newChangeFeedFixture()
	connect(manager, "alice")

	pet := &entity.Pet{ID: "pet-1", OwnerID: "alice", Name: "Biscuit", Status: entity.PetStatusListed}
	uc.HandlePetUpdate(context.Background(), pet)

	stored, _ := notifications.List(context.Background(), "alice")
	assert.Len(t, stored, 1)
	assert.NoError(t, notifications.MarkRead(context.Background(), stored[0].ID, "alice"))

	uc.HandlePetUpdate(context.Background(), pet)
	stored, _ = notifications.List(context.Background(), "alice")
	assert.Len(t, stored, 1)
}

func TestAppointmentUpdateNotifiesWithFormattedDate(t *testing.T) {
	uc, manager, notifications := newChangeFeedFixture()
	owner := connect(manager, "alice")

	date := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)
	uc.HandleAppointmentUpdate(context.Background(), &entity.Appointment{
		ID:     "appt-1",
		UserID: "alice",
		Date:   date,
		Status: "Rescheduled",
	})

	push := nextEvent(t, owner)
	assert.Equal(t, ws.EventNewNotification, push.Event)
	assert.Contains(t, string(push.Data), "3/9/2026")

	stored, err := notifications.List(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, entity.NotificationTypeAppointmentUpdate, stored[0].Type)
	assert.Equal(t, "appt-1", stored[0].Data["appointmentId"])
}

func TestAppointmentUpdateThrottledWithinWindow(t *testing.T) {
	uc, manager, notifications := newChangeFeedFixture()
	owner := connect(manager, "alice")

	appointment := &entity.Appointment{ID: "appt-1", UserID: "alice", Date: time.Now().UTC()}
	uc.HandleAppointmentUpdate(context.Background(), appointment)
	uc.HandleAppointmentUpdate(context.Background(), appointment)

	assert.Equal(t, ws.EventNewNotification, nextEvent(t, owner).Event)
	assert.Equal(t, 0, len(owner.Send))

	stored, _ := notifications.List(context.Background(), "alice")
	assert.Len(t, stored, 1)
}

func TestAppointmentThrottleExpires(t *testing.T) {
	repo := memory.NewNotificationRepository()
	manager := ws.NewManager()
	notifications := NewNotificationUseCase(repo)
	uc := NewChangeFeedUseCase(repo, notifications, manager)
	ctx := context.Background()

	// A notification older than the window must not suppress a new one.
	repo.Create(ctx, &entity.Notification{
		ID:        "n-old",
		UserID:    "alice",
		Type:      entity.NotificationTypeAppointmentUpdate,
		Data:      map[string]interface{}{"appointmentId": "appt-1"},
		CreatedAt: time.Now().UTC().Add(-2 * time.Minute),
	})

	uc.HandleAppointmentUpdate(ctx, &entity.Appointment{ID: "appt-1", UserID: "alice", Date: time.Now().UTC()})

	stored, _ := notifications.List(ctx, "alice")
	assert.Len(t, stored, 2)
}

func TestAppointmentThrottleIsPerAppointment(t *testing.T) {
	uc, _, notifications := newChangeFeedFixture()
	ctx := context.Background()

	uc.HandleAppointmentUpdate(ctx, &entity.Appointment{ID: "appt-1", UserID: "alice", Date: time.Now().UTC()})
	uc.HandleAppointmentUpdate(ctx, &entity.Appointment{ID: "appt-2", UserID: "alice", Date: time.Now().UTC()})

	stored, _ := notifications.List(ctx, "alice")
	assert.Len(t, stored, 2)
}

func TestRunAttachesWatchers(t *testing.T) {
	uc, manager, notifications := newChangeFeedFixture()
	owner := connect(manager, "alice")

	feed := memory.NewChangeFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc.Run(ctx, feed)

	feed.EmitPetUpdate(&entity.Pet{ID: "pet-1", OwnerID: "alice", Name: "Biscuit", Status: entity.PetStatusListed})

	assert.Equal(t, ws.EventPetUpdated, nextEvent(t, owner).Event)
	assert.Equal(t, ws.EventNewNotification, nextEvent(t, owner).Event)

	feed.EmitAppointmentUpdate(&entity.Appointment{ID: "appt-1", UserID: "alice", Date: time.Now().UTC()})
	assert.Equal(t, ws.EventNewNotification, nextEvent(t, owner).Event)

	stored, _ := notifications.List(ctx, "alice")
	assert.Len(t, stored, 2)

	// After cancellation the feed must stop delivering.
	cancel()
	feed.EmitPetUpdate(&entity.Pet{ID: "pet-2", OwnerID: "alice", Status: entity.PetStatusListed})
	assert.Equal(t, 0, len(owner.Send))
}

func TestNotificationStoreFailureDoesNotBlockPush(t *testing.T) {
	manager := ws.NewManager()
	notifications := NewNotificationUseCase(failingNotificationRepo{})
	uc := NewChangeFeedUseCase(failingNotificationRepo{}, notifications, manager)
	owner := connect(manager, "alice")

	uc.HandlePetUpdate(context.Background(), &entity.Pet{
		ID:      "pet-1",
		OwnerID: "alice",
		Name:    "Biscuit",
		Status:  entity.PetStatusListed,
	})

	assert.Equal(t, ws.EventPetUpdated, nextEvent(t, owner).Event)
	assert.Equal(t, ws.EventNewNotification, nextEvent(t, owner).Event)
}
