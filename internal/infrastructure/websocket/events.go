package websocket

import (
	"encoding/json"
	"time"
)

// Client-emitted events.
const (
	EventJoinChat      = "join_chat"
	EventSendMessage   = "send_message"
	EventUpdateMessage = "update_message"
)

// Server-emitted events.
const (
	EventReceiveMessage  = "receive_message"
	EventMessageSent     = "message_sent"
	EventMessageError    = "message_error"
	EventMessageUpdated  = "message_updated"
	EventPetUpdated      = "pet_updated"
	EventNewNotification = "new_notification"
)

// WSMessage is the wire envelope for both directions of the event channel.
type WSMessage struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Envelope marshals a named event with its payload into wire form.
func Envelope(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{
		Event:     event,
		Data:      raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
