package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esa-nhy/gatehouse/internal/apperror"
)

// Handler handles the HTTP surface of authentication: login and logout.
// Handlers are thin: bind the request, call the service, render JSON.
type Handler struct {
	service Service
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Login processes POST /api/v1/auth/login.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return apperror.NewValidation("username and password are required")
	}

	token, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return MapError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "logged in successfully",
		"token":   token,
	})
}

// Logout processes POST /api/v1/auth/logout. Requires an authenticated
// request; revokes the session named by the presented token.
func (h *Handler) Logout(c echo.Context) error {
	principal := GetPrincipal(c)
	if principal == nil {
		return apperror.NewMissingContext()
	}

	if err := h.service.Logout(c.Request().Context(), principal.SessionID); err != nil {
		return MapError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "logged out successfully",
	})
}
