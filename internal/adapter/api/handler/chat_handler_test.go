package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"paws/internal/adapter/repository/memory"
	"paws/internal/domain/entity"
	"paws/internal/infrastructure/ratelimit"
	ws "paws/internal/infrastructure/websocket"
	"paws/internal/usecase"
)

func newChatHandlerFixture(t *testing.T) (*ChatHandler, *echo.Echo) {
	t.Helper()

	messageRepo := memory.NewMessageRepository()
	userRepo := memory.NewUserRepository()
	userRepo.Put(&entity.User{ID: "bob", Name: "Bob"})

	ctx := context.Background()
	base := time.Now().UTC()
	messageRepo.Create(ctx, &entity.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob", Content: "hello", Type: entity.MessageTypeText, CreatedAt: base})
	messageRepo.Create(ctx, &entity.Message{ID: "m2", SenderID: "bob", ReceiverID: "alice", Content: "hi back", Type: entity.MessageTypeText, CreatedAt: base.Add(time.Minute)})

	uc := usecase.NewChatUseCase(messageRepo, userRepo, ws.NewManager(), ratelimit.NewRateLimiter())
	return NewChatHandler(uc), echo.New()
}

func TestGetMessagesReturnsHistory(t *testing.T) {
	h, e := newChatHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId", "otherUserId")
	c.SetParamValues("alice", "bob")

	if assert.NoError(t, h.GetMessages(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "hello")
		assert.Contains(t, rec.Body.String(), "hi back")
	}
}

func TestGetMessagesMissingParam(t *testing.T) {
	h, e := newChatHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues("alice")

	if assert.NoError(t, h.GetMessages(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestGetInboxReturnsConversations(t *testing.T) {
	h, e := newChatHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues("alice")

	if assert.NoError(t, h.GetInbox(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Bob")
		assert.Contains(t, rec.Body.String(), "hi back")
	}
}
