package handler

import (
	"context"
	"encoding/json"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "paws/internal/infrastructure/websocket"
	"paws/internal/usecase"
	"paws/pkg/errors"
	"paws/pkg/logger"
)

type WebSocketHandler struct {
	wsManager   *ws.Manager
	chatUseCase *usecase.ChatUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restricted by the reverse proxy in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, chatUseCase *usecase.ChatUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		chatUseCase: chatUseCase,
	}
}

// HandleWebSocket upgrades the connection and runs the event loop. Identity
// is claimed later through join_chat; authentication sits outside this
// surface.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	go client.WritePump()
	go client.ReadPump(h.wsManager, h.handleEvent)

	return nil
}

func (h *WebSocketHandler) handleEvent(client *ws.Client, msg *ws.WSMessage) {
	switch msg.Event {
	case ws.EventJoinChat:
		h.handleJoin(client, msg.Data)

	case ws.EventSendMessage:
		var input usecase.SendMessageInput
		if err := json.Unmarshal(msg.Data, &input); err != nil {
			h.wsManager.EmitToClient(client, ws.EventMessageError, map[string]string{"error": "invalid message format"})
			return
		}
		h.chatUseCase.HandleSendMessage(context.Background(), client, &input)

	case ws.EventUpdateMessage:
		h.chatUseCase.HandleUpdateMessage(client, msg.Data)

	default:
		logger.Warn("websocket: unknown event %q from channel %q", msg.Event, client.UserID)
		h.wsManager.EmitToClient(client, ws.EventMessageError, map[string]string{"error": "unknown event"})
	}
}

// handleJoin accepts both wire shapes the clients send: a bare user id
// string, or an object carrying userId.
func (h *WebSocketHandler) handleJoin(client *ws.Client, data json.RawMessage) {
	var userID string
	if err := json.Unmarshal(data, &userID); err != nil {
		var obj struct {
			UserID string `json:"userId"`
		}
		if err := json.Unmarshal(data, &obj); err != nil || obj.UserID == "" {
			h.wsManager.EmitToClient(client, ws.EventMessageError, map[string]string{"error": "join_chat requires a user id"})
			return
		}
		userID = obj.UserID
	}
	if userID == "" {
		h.wsManager.EmitToClient(client, ws.EventMessageError, map[string]string{"error": "join_chat requires a user id"})
		return
	}

	h.wsManager.Join(client, userID)
}
