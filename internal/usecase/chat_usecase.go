package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"paws/internal/domain/entity"
	"paws/internal/domain/repository"
	ws "paws/internal/infrastructure/websocket"
	"paws/pkg/errors"
	"paws/pkg/logger"
)

// EnrichedMessage is a stored message decorated with the sender's display
// name for immediate rendering on the receiving client.
type EnrichedMessage struct {
	*entity.Message
	SenderName string `json:"senderName"`
}

type SendMessageInput struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	TicketID   string `json:"ticketId"`
}

type ChatUseCase struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	manager     *ws.Manager
	limiter     RateLimiter
}

// RateLimiter bounds per-user event rates on the realtime channel.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	manager *ws.Manager,
	limiter RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		manager:     manager,
		limiter:     limiter,
	}
}

// HandleSendMessage persists an inbound message and routes the realtime
// copies: receive_message to the receiver's channel, message_sent back to the
// originating connection. Persistence failures surface to the sender only.
func (uc *ChatUseCase) HandleSendMessage(ctx context.Context, client *ws.Client, input *SendMessageInput) {
	if input.SenderID == "" || input.ReceiverID == "" {
		logger.Warn("chat: send_message missing ids (sender=%q receiver=%q), dropping", input.SenderID, input.ReceiverID)
		return
	}

	msgType := input.Type
	if msgType == "" {
		msgType = entity.MessageTypeText
	}

	message := &entity.Message{
		ID:         uuid.New().String(),
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
		Type:       msgType,
		IsRead:     false,
		TicketID:   input.TicketID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		logger.Error("chat: failed to persist message from %s: %v", input.SenderID, err)
		uc.manager.EmitToClient(client, ws.EventMessageError, map[string]string{"error": "Failed to send message"})
		return
	}

	enriched := &EnrichedMessage{
		Message:    message,
		SenderName: uc.senderName(ctx, input.SenderID),
	}

	uc.manager.SendToUser(input.ReceiverID, ws.EventReceiveMessage, enriched)

	// The ack carries the bare persisted record; the sender already knows
	// their own name.
	uc.manager.EmitToClient(client, ws.EventMessageSent, message)
}

// senderName resolves a display name for the message header. Lookup failures
// degrade to a generic label; delivery never blocks on identity.
func (uc *ChatUseCase) senderName(ctx context.Context, userID string) string {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("chat: sender lookup for %s failed: %v", userID, err)
		return "User"
	}
	if user.Name != "" {
		return user.Name
	}
	if user.Email != "" {
		return user.Email
	}
	return "User"
}

// HandleUpdateMessage forwards a transient edit hint to the receiver's
// channel. The payload is relayed as-is and nothing is persisted.
func (uc *ChatUseCase) HandleUpdateMessage(client *ws.Client, data json.RawMessage) {
	if allowed, wait := uc.limiter.Allow(client.UserID, "update_message"); !allowed {
		uc.manager.EmitToClient(client, ws.EventMessageError, map[string]interface{}{
			"error":      "rate limit exceeded",
			"retryAfter": wait.Seconds(),
		})
		return
	}

	var hint struct {
		ReceiverID string `json:"receiverId"`
	}
	if err := json.Unmarshal(data, &hint); err != nil || hint.ReceiverID == "" {
		logger.Warn("chat: update_message without receiverId from %s, dropping", client.UserID)
		return
	}

	uc.manager.SendToUser(hint.ReceiverID, ws.EventMessageUpdated, data)
}

// GetMessages returns the full history between two users, oldest first.
func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, otherUserID string) ([]*entity.Message, error) {
	if userID == "" || otherUserID == "" {
		return nil, errors.BadRequest("both user ids are required", nil)
	}
	return uc.messageRepo.ListBetween(ctx, userID, otherUserID)
}

// GetInbox folds the user's message stream into one conversation per
// correspondent, carrying the most recent message of each, ordered by
// recency.
func (uc *ChatUseCase) GetInbox(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	if userID == "" {
		return nil, errors.BadRequest("user id is required", nil)
	}

	messages, err := uc.messageRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	conversations := make([]*entity.Conversation, 0)
	for _, msg := range messages {
		other := msg.ReceiverID
		if msg.SenderID != userID {
			other = msg.SenderID
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		conversations = append(conversations, &entity.Conversation{
			OtherUserID:   other,
			LatestMessage: msg,
		})
	}

	uc.enrichConversations(ctx, conversations)
	return conversations, nil
}

func (uc *ChatUseCase) enrichConversations(ctx context.Context, conversations []*entity.Conversation) {
	ids := make([]string, 0, len(conversations))
	for _, c := range conversations {
		ids = append(ids, c.OtherUserID)
	}
	if len(ids) == 0 {
		return
	}

	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("chat: inbox identity lookup failed: %v", err)
	}
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, c := range conversations {
		user, ok := byID[c.OtherUserID]
		if !ok {
			c.OtherUserName = "Unknown User"
			continue
		}
		c.OtherUserRole = user.Role
		switch {
		case user.Role == entity.RoleAdmin:
			c.OtherUserName = "Main Shelter"
		case user.Name != "":
			c.OtherUserName = user.Name
		case user.Email != "":
			c.OtherUserName = user.Email
		default:
			c.OtherUserName = "Unknown User"
		}
	}
}
