package user

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/esa-nhy/gatehouse/internal/auth"
	"github.com/esa-nhy/gatehouse/internal/middleware"
)

// RegisterRoutes sets up the user endpoints. Registration is public and
// rate-limited; everything else requires an authenticated session.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.Service) {
	e.POST("/api/v1/users", h.Register, middleware.RateLimit(5, time.Minute))

	g := e.Group("/api/v1/users", auth.RequireAuth(authService))
	g.GET("", h.List)
	g.GET("/me", h.Me)
	g.PUT("/me", h.Update)
	g.DELETE("/me", h.Delete)
	g.GET("/:id", h.Get)
}
