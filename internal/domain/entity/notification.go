package entity

import "time"

// Notification kinds emitted by the change-feed listener.
const (
	NotificationTypePetStatus         = "pet_status"
	NotificationTypeAppointmentUpdate = "appointment_update"
)

// Notification is a durable per-user alert. Data carries a structured
// payload (e.g. {"petId": ...}) that the dedup and throttle queries filter on,
// so it must stay queryable rather than an opaque string.
type Notification struct {
	ID        string                 `json:"id" firestore:"id"`
	UserID    string                 `json:"userId" firestore:"userId"`
	Type      string                 `json:"type" firestore:"type"`
	Title     string                 `json:"title" firestore:"title"`
	Message   string                 `json:"message" firestore:"message"`
	Data      map[string]interface{} `json:"data" firestore:"data"`
	IsRead    bool                   `json:"isRead" firestore:"isRead"`
	CreatedAt time.Time              `json:"createdAt" firestore:"createdAt"`
}
