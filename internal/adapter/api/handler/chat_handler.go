package handler

import (
	"github.com/labstack/echo/v4"

	"paws/internal/usecase"
	"paws/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

// GetMessages returns the full history between two users, oldest first.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID := c.Param("userId")
	otherUserID := c.Param("otherUserId")

	messages, err := h.chatUseCase.GetMessages(c.Request().Context(), userID, otherUserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// GetInbox returns one conversation per correspondent, most recent first.
func (h *ChatHandler) GetInbox(c echo.Context) error {
	userID := c.Param("userId")

	conversations, err := h.chatUseCase.GetInbox(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}
