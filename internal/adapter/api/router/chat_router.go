package router

import (
	"github.com/labstack/echo/v4"

	"paws/internal/adapter/api/handler"
)

// SetupChatRouter wires the conversation read endpoints. They sit behind the
// gateway's trust boundary and take the acting user from the path.
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler) {
	chatGroup := e.Group("/v1/chat")

	chatGroup.GET("/history/:userId/:otherUserId", chatHandler.GetMessages)
	chatGroup.GET("/inbox/:userId", chatHandler.GetInbox)
}
