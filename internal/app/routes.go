package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/esa-nhy/gatehouse/internal/auth"
	"github.com/esa-nhy/gatehouse/internal/password"
	"github.com/esa-nhy/gatehouse/internal/user"
)

// RegisterRoutes builds the service graph and registers all application
// routes. This is the single place where modules are wired together.
func (a *App) RegisterRoutes() error {
	e := a.Echo

	// --- Core services ---

	alg, err := password.ParseAlgorithm(a.Config.Auth.PasswordAlgorithm)
	if err != nil {
		return err
	}
	hasher := password.NewHasher(alg)

	sessions := auth.NewRedisSessionStore(a.Redis, a.Config.Auth.SessionTTL)
	tokens := auth.NewTokenManager([]byte(a.Config.Auth.JWTSecret))

	// --- User module ---

	userRepo := user.NewRepository(a.DB)
	userSvc := user.NewService(userRepo, hasher, a.Config.Auth.Pepper)

	// --- Auth module ---
	// The user service doubles as the credential source for login.

	authSvc, err := auth.NewService(userSvc, sessions, tokens, hasher)
	if err != nil {
		return err
	}

	// --- Public routes ---

	// Health check endpoint for Docker/orchestrator health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := a.DB.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db unavailable"})
		}
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "redis unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Module routes ---

	auth.RegisterRoutes(e, auth.NewHandler(authSvc), authSvc)
	user.RegisterRoutes(e, user.NewHandler(userSvc), authSvc)

	return nil
}
