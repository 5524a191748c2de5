package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestSessionStore spins up an in-memory Redis and returns a store backed
// by it. The miniredis instance is returned so tests can advance its clock.
func newTestSessionStore(t *testing.T) (SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisSessionStore(rdb, SessionTTL), mr
}

func TestSessionStore_CreateAndLookup(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "sid-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := store.Lookup(ctx, "sid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected user-1, got %s", userID)
	}
}

func TestSessionStore_LookupUnknown(t *testing.T) {
	store, _ := newTestSessionStore(t)

	_, err := store.Lookup(context.Background(), "never-created")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_Revoke(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "sid-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Revoke(ctx, "sid-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := store.Lookup(ctx, "sid-1")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after revoke, got %v", err)
	}
}

func TestSessionStore_RevokeIdempotent(t *testing.T) {
	store, _ := newTestSessionStore(t)

	// Revoking a session that never existed is not an error.
	if err := store.Revoke(context.Background(), "never-created"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSessionStore_ExpiresAfterTTL(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "sid-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Just before the TTL the session is still live.
	mr.FastForward(SessionTTL - time.Second)
	if _, err := store.Lookup(ctx, "sid-1"); err != nil {
		t.Fatalf("session expired early: %v", err)
	}

	// Past the TTL it is gone, indistinguishable from never existing.
	mr.FastForward(2 * time.Second)
	_, err := store.Lookup(ctx, "sid-1")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after TTL, got %v", err)
	}
}

func TestSessionStore_NoSlidingExpiry(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "sid-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Reads must not refresh the expiry: look up repeatedly while advancing
	// the clock, and the session still dies at its original deadline.
	for i := 0; i < 23; i++ {
		mr.FastForward(time.Hour)
		if _, err := store.Lookup(ctx, "sid-1"); err != nil {
			t.Fatalf("session expired early at hour %d: %v", i+1, err)
		}
	}

	mr.FastForward(2 * time.Hour)
	_, err := store.Lookup(ctx, "sid-1")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected session to expire at original deadline, got %v", err)
	}
}

func TestSessionStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	store := NewRedisSessionStore(rdb, SessionTTL)

	// Kill the backend; every operation must surface ErrStoreUnavailable.
	mr.Close()

	ctx := context.Background()
	if err := store.Create(ctx, "sid-1", "user-1"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Create: expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := store.Lookup(ctx, "sid-1"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Lookup: expected ErrStoreUnavailable, got %v", err)
	}
	if err := store.Revoke(ctx, "sid-1"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Revoke: expected ErrStoreUnavailable, got %v", err)
	}
}

func TestGenerateSessionID(t *testing.T) {
	a, err := generateSessionID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := generateSessionID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != sessionIDBytes*2 {
		t.Errorf("expected %d hex chars, got %d", sessionIDBytes*2, len(a))
	}
	if a == b {
		t.Error("expected distinct session IDs")
	}
}
