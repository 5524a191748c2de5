package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esa-nhy/gatehouse/internal/apperror"
	"github.com/esa-nhy/gatehouse/internal/auth"
)

// Password length bounds enforced at registration and password change.
const (
	minPasswordLen = 8
	maxPasswordLen = 128
)

// Handler handles HTTP requests for the user module. Handlers are thin:
// bind the request, validate shape, call the service, render JSON.
type Handler struct {
	service Service
}

// NewHandler creates a new user handler with the given service.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Register processes POST /api/v1/users.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if err := validateRegistration(req); err != nil {
		return err
	}

	u, err := h.service.Register(c.Request().Context(), CreateInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"status":  "success",
		"message": "registered successfully",
		"data":    u,
	})
}

// Me processes GET /api/v1/users/me for the authenticated user.
func (h *Handler) Me(c echo.Context) error {
	principal := auth.GetPrincipal(c)
	if principal == nil {
		return apperror.NewMissingContext()
	}

	u, err := h.service.GetUser(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"status": "success", "data": u})
}

// List processes GET /api/v1/users.
func (h *Handler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"status": "success", "data": users})
}

// Get processes GET /api/v1/users/:id.
func (h *Handler) Get(c echo.Context) error {
	u, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"status": "success", "data": u})
}

// Update processes PUT /api/v1/users/me. Users can modify only their own
// profile; there is no admin surface.
func (h *Handler) Update(c echo.Context) error {
	principal := auth.GetPrincipal(c)
	if principal == nil {
		return apperror.NewMissingContext()
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if req.Password != "" {
		if err := validatePassword(req.Password); err != nil {
			return err
		}
	}

	u, err := h.service.UpdateUser(c.Request().Context(), principal.UserID, UpdateInput{
		Password: req.Password,
		Name:     req.Name,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"message": "updated successfully",
		"data":    u,
	})
}

// Delete processes DELETE /api/v1/users/me.
func (h *Handler) Delete(c echo.Context) error {
	principal := auth.GetPrincipal(c)
	if principal == nil {
		return apperror.NewMissingContext()
	}

	if err := h.service.DeleteUser(c.Request().Context(), principal.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "deleted successfully",
	})
}

// validateRegistration checks the request shape. Username must be
// alphanumeric so it is safe in URLs and log lines.
func validateRegistration(req RegisterRequest) error {
	if req.Username == "" || req.Password == "" || req.Name == "" || req.Address == "" {
		return apperror.NewValidation("username, password, name, and address are required")
	}
	for _, r := range req.Username {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum {
			return apperror.NewValidation("username must be alphanumeric")
		}
	}
	return validatePassword(req.Password)
}

func validatePassword(p string) error {
	if len(p) < minPasswordLen || len(p) > maxPasswordLen {
		return apperror.NewValidation("password must be between 8 and 128 characters")
	}
	return nil
}
