package auth

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/esa-nhy/gatehouse/internal/apperror"
	"github.com/esa-nhy/gatehouse/internal/password"
)

// contextKeyPrincipal stores the authenticated Principal in the Echo context.
const contextKeyPrincipal = "auth_principal"

// bearerPrefix is the required Authorization header scheme.
const bearerPrefix = "Bearer "

// RequireAuth returns middleware that authenticates the request's bearer
// token and injects the resulting Principal into the Echo context. Requests
// without a well-formed Authorization header, or whose token fails any
// verification step, get a 401.
func RequireAuth(service Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return apperror.NewUnauthorized("authentication required")
			}

			principal, err := service.Authenticate(c.Request().Context(), token)
			if err != nil {
				return MapError(err)
			}

			c.Set(contextKeyPrincipal, principal)

			return next(c)
		}
	}
}

// GetPrincipal retrieves the authenticated principal from the Echo context.
// Returns nil if RequireAuth was not applied to the route.
func GetPrincipal(c echo.Context) *Principal {
	principal, ok := c.Get(contextKeyPrincipal).(*Principal)
	if !ok {
		return nil
	}
	return principal
}

// bearerToken extracts the token from the Authorization header. A header
// without the Bearer scheme is treated the same as a missing one.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	return token, token != ""
}

// MapError translates auth error kinds into the HTTP-facing taxonomy. The
// four authentication failures collapse into one generic 401 -- the caller
// learns nothing about which check failed. Store outages and undecodable
// hash records stay distinct for operational visibility while still denying
// access.
func MapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return apperror.NewUnauthorized("invalid username or password")
	case errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrStaleToken),
		errors.Is(err, ErrSessionNotFound):
		return apperror.NewUnauthorized("not authenticated")
	case errors.Is(err, ErrStoreUnavailable):
		return apperror.NewUnavailable(err)
	case errors.Is(err, password.ErrMalformedHash):
		return apperror.NewInternal(err)
	default:
		return apperror.NewInternal(err)
	}
}
