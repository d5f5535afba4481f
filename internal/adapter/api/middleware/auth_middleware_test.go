package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestDevModeUsesHeaderIdentity(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(nil)

	handler := m.Authenticate(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("uid").(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "alice")
	rec := httptest.NewRecorder()

	if assert.NoError(t, handler(e.NewContext(req, rec))) {
		assert.Equal(t, "alice", rec.Body.String())
	}
}

func TestDevModeRejectsMissingHeader(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(nil)

	handler := m.Authenticate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	err := handler(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
