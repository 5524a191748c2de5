package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-key-at-least-32-bytes!")

// newTestTokenManager returns a manager with a frozen clock so expiry tests
// are deterministic.
func newTestTokenManager(at time.Time) *TokenManager {
	tm := NewTokenManager(testSecret)
	tm.now = func() time.Time { return at }
	return tm
}

func TestToken_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	tm := newTestTokenManager(now)

	token, err := tm.Issue("kaede", "sid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "kaede" {
		t.Errorf("expected subject kaede, got %s", claims.Subject)
	}
	if claims.SessionID != "sid-1" {
		t.Errorf("expected session sid-1, got %s", claims.SessionID)
	}
	if !claims.IssuedAt.Time.Equal(now) {
		t.Errorf("expected issued-at %v, got %v", now, claims.IssuedAt.Time)
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(tokenTTL)) {
		t.Errorf("expected expiry %v, got %v", now.Add(tokenTTL), claims.ExpiresAt.Time)
	}
	if !claims.NotBefore.Time.Equal(now) {
		t.Errorf("expected not-before %v, got %v", now, claims.NotBefore.Time)
	}
}

func TestToken_Expired(t *testing.T) {
	issued := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	tm := newTestTokenManager(issued)

	token, err := tm.Issue("kaede", "sid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Still valid just inside the window.
	tm.now = func() time.Time { return issued.Add(tokenTTL - time.Minute) }
	if _, err := tm.Verify(token); err != nil {
		t.Fatalf("token rejected inside its window: %v", err)
	}

	// Rejected past expiry.
	tm.now = func() time.Time { return issued.Add(tokenTTL + time.Minute) }
	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid after expiry, got %v", err)
	}
}

func TestToken_WrongSecret(t *testing.T) {
	now := time.Now()
	tm := newTestTokenManager(now)

	token, err := tm.Issue("kaede", "sid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewTokenManager([]byte("a-completely-different-signing-key"))
	other.now = func() time.Time { return now }
	if _, err := other.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid under wrong secret, got %v", err)
	}
}

func TestToken_Malformed(t *testing.T) {
	tm := newTestTokenManager(time.Now())

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := tm.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q): expected ErrTokenInvalid, got %v", raw, err)
		}
	}
}

func TestToken_UnsignedRejected(t *testing.T) {
	// A token claiming alg "none" must never verify, even with correct claims.
	now := time.Now()
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   "kaede",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		SessionID: "sid-1",
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("building unsigned token: %v", err)
	}

	tm := newTestTokenManager(now)
	if _, err := tm.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for alg none, got %v", err)
	}
}

func TestToken_WrongIssuerOrAudience(t *testing.T) {
	now := time.Now()
	tm := newTestTokenManager(now)

	sign := func(iss, aud string) string {
		t.Helper()
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    iss,
				Audience:  jwt.ClaimStrings{aud},
				Subject:   "kaede",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			SessionID: "sid-1",
		})
		raw, err := tok.SignedString(testSecret)
		if err != nil {
			t.Fatalf("signing: %v", err)
		}
		return raw
	}

	if _, err := tm.Verify(sign("someone-else", tokenAudience)); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}
	if _, err := tm.Verify(sign(tokenIssuer, "another-audience")); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for wrong audience, got %v", err)
	}
}

func TestToken_MissingSessionClaim(t *testing.T) {
	now := time.Now()
	tm := newTestTokenManager(now)

	// Correctly signed, correct issuer/audience, but no session claim.
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   "kaede",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	raw, err := tok.SignedString(testSecret)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := tm.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid without session claim, got %v", err)
	}
}
