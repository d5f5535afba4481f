package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"paws/internal/domain/entity"
	"paws/internal/domain/repository"
	ws "paws/internal/infrastructure/websocket"
	"paws/pkg/errors"
	"paws/pkg/logger"
)

// Repeated appointment updates inside this window collapse into the first
// notification.
const appointmentThrottleWindow = 60 * time.Second

// ChangeFeedUseCase turns store-level update events into realtime pushes and
// durable notifications for the affected owner.
type ChangeFeedUseCase struct {
	notificationRepo repository.NotificationRepository
	notifications    *NotificationUseCase
	manager          *ws.Manager
}

func NewChangeFeedUseCase(
	notificationRepo repository.NotificationRepository,
	notifications *NotificationUseCase,
	manager *ws.Manager,
) *ChangeFeedUseCase {
	return &ChangeFeedUseCase{
		notificationRepo: notificationRepo,
		notifications:    notifications,
		manager:          manager,
	}
}

// Run attaches the handlers to a change feed. It returns once the watches are
// established; events stream until ctx is cancelled.
func (uc *ChangeFeedUseCase) Run(ctx context.Context, feed repository.ChangeFeed) {
	feed.WatchPets(ctx, uc.HandlePetUpdate)
	feed.WatchAppointments(ctx, uc.HandleAppointmentUpdate)
	logger.Info("changefeed: watching pets and appointments")
}

// HandlePetUpdate pushes the updated record to its owner, and on the
// transition into the listed status also raises a one-time notification.
// The listing notification is deduplicated for the pet's lifetime.
func (uc *ChangeFeedUseCase) HandlePetUpdate(ctx context.Context, pet *entity.Pet) {
	uc.manager.SendToUser(pet.OwnerID, ws.EventPetUpdated, pet)

	if pet.Status != entity.PetStatusListed {
		return
	}

	_, err := uc.notificationRepo.FindByReference(ctx, pet.OwnerID, entity.NotificationTypePetStatus, "petId", pet.ID, time.Time{})
	if err == nil {
		return
	}
	if !errors.Is(err, "NOT_FOUND") {
		logger.Error("changefeed: pet notification dedup check failed for %s: %v", pet.ID, err)
		return
	}

	uc.dispatch(ctx, &entity.Notification{
		UserID:  pet.OwnerID,
		Type:    entity.NotificationTypePetStatus,
		Title:   "Pet Listed!",
		Message: fmt.Sprintf("Your pet %q is now visible on the home feed.", pet.Name),
		Data: map[string]interface{}{
			"petId":  pet.ID,
			"status": pet.Status,
		},
	})
}

// HandleAppointmentUpdate notifies the appointment's owner, throttled so a
// burst of edits produces a single notification per window.
func (uc *ChangeFeedUseCase) HandleAppointmentUpdate(ctx context.Context, appointment *entity.Appointment) {
	since := time.Now().UTC().Add(-appointmentThrottleWindow)
	_, err := uc.notificationRepo.FindByReference(ctx, appointment.UserID, entity.NotificationTypeAppointmentUpdate, "appointmentId", appointment.ID, since)
	if err == nil {
		return
	}
	if !errors.Is(err, "NOT_FOUND") {
		logger.Error("changefeed: appointment throttle check failed for %s: %v", appointment.ID, err)
		return
	}

	uc.dispatch(ctx, &entity.Notification{
		UserID:  appointment.UserID,
		Type:    entity.NotificationTypeAppointmentUpdate,
		Title:   "Appointment Update",
		Message: fmt.Sprintf("Your appointment on %s has been updated. Check details.", appointment.Date.Format("1/2/2006")),
		Data: map[string]interface{}{
			"appointmentId": appointment.ID,
			"status":        appointment.Status,
		},
	})
}

// dispatch pushes first, then persists. A failed write is logged inside
// Create and never retracts the push.
func (uc *ChangeFeedUseCase) dispatch(ctx context.Context, notification *entity.Notification) {
	notification.ID = uuid.New().String()
	notification.CreatedAt = time.Now().UTC()

	uc.manager.SendToUser(notification.UserID, ws.EventNewNotification, notification)
	uc.notifications.Create(ctx, notification)
}
