package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Fixed token claims identifying this deployment. Tokens are valid for the
// same 24 hours as the session they name; notBefore equals issuedAt.
const (
	tokenIssuer   = "esa-nhy"
	tokenAudience = "if673-general-population"
	tokenTTL      = SessionTTL
)

// signingMethod is the only accepted algorithm. Verification pins it with
// jwt.WithValidMethods, so a token signed under anything else -- including
// "none" -- fails instead of being re-interpreted.
var signingMethod = jwt.SigningMethodHS256

// Claims is the token payload: the registered claim set plus the session
// claim naming the session this token authorizes.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sess"`
}

// TokenManager issues and verifies the signed bearer tokens. A token is
// structurally verifiable without a store lookup, but its authority still
// depends on the named session being live.
type TokenManager struct {
	secret []byte

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewTokenManager creates a TokenManager signing with the given symmetric
// secret.
func NewTokenManager(secret []byte) *TokenManager {
	return &TokenManager{secret: secret, now: time.Now}
}

// Issue signs a token for the given subject carrying the session claim.
func (tm *TokenManager) Issue(subject, sessionID string) (string, error) {
	now := tm.now()

	token := jwt.NewWithClaims(signingMethod, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		SessionID: sessionID,
	})

	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks a bearer token's signature, algorithm, issuer, audience, and
// time window, and requires the session claim. Every failure collapses into
// ErrTokenInvalid so callers cannot probe which check tripped.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	// The session claim and issued-at are mandatory: without them the token
	// cannot be tied to a live session or checked for staleness.
	if claims.SessionID == "" || claims.IssuedAt == nil {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
