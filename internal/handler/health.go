package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Ping handles GET /api/ping, the plain-text liveness probe.
func Ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}
