package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/esa-nhy/gatehouse/internal/middleware"
)

// RegisterRoutes sets up the auth endpoints. Login is public and rate-limited
// to slow down brute-force and credential-stuffing attempts; logout requires
// a live session.
func RegisterRoutes(e *echo.Echo, h *Handler, service Service) {
	e.POST("/api/v1/auth/login", h.Login, middleware.RateLimit(10, time.Minute))
	e.POST("/api/v1/auth/logout", h.Logout, RequireAuth(service))
}
