package entity

import "time"

// Message types.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// Message is a direct message between two users. Once stored it is never
// mutated except for IsRead.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	SenderID   string    `json:"senderId" firestore:"senderId"`
	ReceiverID string    `json:"receiverId" firestore:"receiverId"`
	Content    string    `json:"content" firestore:"content"`
	Type       string    `json:"type" firestore:"type"` // "text", "image"
	IsRead     bool      `json:"isRead" firestore:"isRead"`
	TicketID   string    `json:"ticketId,omitempty" firestore:"ticketId,omitempty"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}
