// Package auth implements login, logout, and request authentication for
// Gatehouse: credential verification against stored hashes, Redis-backed
// sessions, and the signed bearer tokens that carry a session claim.
package auth

import (
	"context"
	"errors"
	"time"
)

// Error kinds returned by the auth service. The HTTP layer maps
// ErrInvalidCredentials, ErrTokenInvalid, ErrStaleToken, and
// ErrSessionNotFound to the same user-visible 401; ErrStoreUnavailable
// surfaces as a 503 so an infrastructure outage is never mislabeled as a
// failed login in logs and metrics.
var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// The two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTokenInvalid is the single error class for every structural,
	// signature, algorithm, time-window, or claim failure during token
	// verification. Collapsing them avoids an oracle on which check failed.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrStaleToken marks a structurally valid token issued before the
	// subject's most recent password change.
	ErrStaleToken = errors.New("token issued before last password change")

	// ErrSessionNotFound means the session never existed or has expired;
	// the store does not distinguish the two.
	ErrSessionNotFound = errors.New("session not found")

	// ErrStoreUnavailable is an infrastructure failure talking to the
	// session store, distinct from a lookup miss.
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// Credential is the stored verification material for a single user, owned by
// the user-profile layer. Salt is empty for self-salting algorithms.
type Credential struct {
	UserID       string
	PasswordHash string
	Salt         string
}

// Identity is the slice of the user profile the auth service needs to decide
// token staleness.
type Identity struct {
	UserID            string
	Username          string
	PasswordChangedAt time.Time
}

// CredentialSource is the user-profile collaborator boundary. The concrete
// implementation lives in the user package; a nil credential with a nil
// error never occurs -- absence is reported as an error the implementation
// documents (apperror.NotFound for the MariaDB-backed one).
type CredentialSource interface {
	FetchCredentialByUsername(ctx context.Context, username string) (*Credential, error)
	FetchIdentity(ctx context.Context, userID string) (*Identity, error)
}

// Principal identifies an authenticated request: the verified user and the
// live session that authorizes it.
type Principal struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"-"`
}

// LoginRequest holds the login payload bound from HTTP.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
