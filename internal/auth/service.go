package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/esa-nhy/gatehouse/internal/apperror"
	"github.com/esa-nhy/gatehouse/internal/password"
)

// Service is the authentication gate: it turns credentials into sessions and
// tokens at login, turns presented tokens back into verified principals, and
// revokes sessions at logout. Handlers call these methods -- they never touch
// the session store or token manager directly.
type Service interface {
	// Login verifies the credential and, on success, mints a session and
	// returns a signed token carrying its identifier. All verification
	// failures -- unknown username included -- return ErrInvalidCredentials.
	Login(ctx context.Context, username, pass string) (string, error)

	// Authenticate verifies a bearer token, confirms its session is live,
	// and checks the token is not stale relative to the subject's last
	// password change. Returns the authenticated principal.
	Authenticate(ctx context.Context, token string) (*Principal, error)

	// Logout revokes the session. Idempotent.
	Logout(ctx context.Context, sessionID string) error
}

// service wires the credential source, session store, token manager, and
// hasher together. Everything is injected at construction; it holds no
// mutable state, so a single instance serves all requests concurrently.
type service struct {
	creds    CredentialSource
	sessions SessionStore
	tokens   *TokenManager
	hasher   *password.Hasher

	// dummyHash/dummySalt form a throwaway credential that is verified on
	// the unknown-username path, so that path burns roughly the same hashing
	// cost as a wrong password for an existing user. Without it, response
	// time would leak which usernames exist.
	dummyHash string
	dummySalt string
}

// NewService creates the auth service. It pre-computes the dummy credential
// used for timing equalization, which can fail only if the system's entropy
// source does.
func NewService(creds CredentialSource, sessions SessionStore, tokens *TokenManager, hasher *password.Hasher) (Service, error) {
	dummySalt, err := password.GenerateSalt("")
	if err != nil {
		return nil, fmt.Errorf("generating dummy salt: %w", err)
	}
	dummyPass, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generating dummy password: %w", err)
	}
	dummyHash, err := hasher.Hash(dummyPass, dummySalt)
	if err != nil {
		return nil, fmt.Errorf("hashing dummy credential: %w", err)
	}

	return &service{
		creds:     creds,
		sessions:  sessions,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: dummyHash,
		dummySalt: dummySalt,
	}, nil
}

func (s *service) Login(ctx context.Context, username, pass string) (string, error) {
	cred, err := s.creds.FetchCredentialByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			// Burn a verification against the dummy credential before
			// failing, so an unknown username costs about as much as a
			// wrong password. The dummy never matches a real password.
			_, _ = s.hasher.Verify(s.dummyHash, s.dummySalt, pass)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("fetching credential: %w", err)
	}

	ok, err := s.hasher.Verify(cred.PasswordHash, cred.Salt, pass)
	if err != nil {
		if errors.Is(err, password.ErrMalformedHash) {
			// Data-integrity problem: this user cannot log in until the
			// record is remediated. Logged distinctly, never surfaced as a
			// wrong password.
			slog.Error("stored credential is undecodable",
				slog.String("user_id", cred.UserID),
				slog.Any("error", err),
			)
			return "", err
		}
		return "", fmt.Errorf("verifying credential: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	sessionID, err := generateSessionID()
	if err != nil {
		return "", err
	}

	// Create the session before issuing the token. If issuance or delivery
	// fails after this point, the leftover is an orphaned session nobody
	// holds a token for -- harmless, and reaped by the TTL. The reverse
	// order could hand out a token whose session was never written.
	if err := s.sessions.Create(ctx, sessionID, cred.UserID); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(username, sessionID)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	slog.Info("user logged in", slog.String("user_id", cred.UserID))

	return token, nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	// The token is structurally valid; its authority still depends on the
	// session being live. Revocation and expiry both surface here.
	userID, err := s.sessions.Lookup(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}

	ident, err := s.creds.FetchIdentity(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			// The user behind the session has been deleted; the session no
			// longer represents anyone.
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("fetching identity: %w", err)
	}

	// A password change invalidates every token issued before it, even while
	// the session record itself is still live. This is what makes "sign out
	// everywhere" instantaneous without enumerating sessions. Both sides are
	// compared at second precision because JWT issued-at is in seconds.
	if ident.PasswordChangedAt.Truncate(time.Second).After(claims.IssuedAt.Time) {
		return nil, ErrStaleToken
	}

	return &Principal{
		UserID:    ident.UserID,
		Username:  ident.Username,
		SessionID: claims.SessionID,
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return err
	}
	slog.Info("session revoked", slog.String("session_id", sessionID))
	return nil
}

// isNotFound reports whether err is the user-profile layer's absence signal.
func isNotFound(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}
