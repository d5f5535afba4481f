package handler

import (
	"github.com/labstack/echo/v4"

	"paws/internal/usecase"
	"paws/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) List(c echo.Context) error {
	userID := c.Get("uid").(string)

	notifications, err := h.notificationUseCase.List(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)
	id := c.Param("id")

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), id, userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"updated": true})
}

// Clear deletes a single notification, or every one the user owns when no id
// is given.
func (h *NotificationHandler) Clear(c echo.Context) error {
	userID := c.Get("uid").(string)
	id := c.Param("id")

	if err := h.notificationUseCase.Clear(c.Request().Context(), userID, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"cleared": true})
}
