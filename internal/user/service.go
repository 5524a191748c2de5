package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/esa-nhy/gatehouse/internal/apperror"
	"github.com/esa-nhy/gatehouse/internal/auth"
	"github.com/esa-nhy/gatehouse/internal/password"
	"github.com/esa-nhy/gatehouse/internal/sanitize"
)

// Service defines the business logic contract for the user module. It also
// satisfies auth.CredentialSource, making this package the user-profile
// collaborator the auth gate consumes.
type Service interface {
	Register(ctx context.Context, input CreateInput) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id string, input UpdateInput) (*User, error)
	DeleteUser(ctx context.Context, id string) error

	auth.CredentialSource
}

// service implements Service on top of the repository and the password
// hasher. The pepper feeds salt generation for externally salted algorithms.
type service struct {
	repo   Repository
	hasher *password.Hasher
	pepper string
}

// NewService creates the user service with the given dependencies.
func NewService(repo Repository, hasher *password.Hasher, pepper string) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		pepper: pepper,
	}
}

// Register creates a new user. It checks username uniqueness before the
// expensive hash, derives the credential under the configured default
// algorithm, and persists the user.
func (s *service) Register(ctx context.Context, input CreateInput) (*User, error) {
	username := strings.TrimSpace(input.Username)

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking username: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("that username has been registered already")
	}

	hash, salt, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	now := time.Now().UTC()
	u := &User{
		ID:                uuid.NewString(),
		Username:          username,
		Name:              sanitize.Plain(input.Name),
		Address:           sanitize.Plain(input.Address),
		PasswordHash:      hash,
		Salt:              salt,
		PasswordChangedAt: now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", u.ID),
		slog.String("username", u.Username),
	)

	return u, nil
}

// GetUser retrieves a single user by ID.
func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// ListUsers returns all users. Credential fields are never populated.
func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return users, nil
}

// UpdateUser applies a partial profile update. A non-empty password re-hashes
// the credential with a fresh salt and bumps the password-changed timestamp,
// which immediately invalidates every token issued before the change.
func (s *service) UpdateUser(ctx context.Context, id string, input UpdateInput) (*User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Password != "" {
		hash, salt, err := s.hashPassword(input.Password)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
		}
		if err := s.repo.UpdatePassword(ctx, id, hash, salt, time.Now().UTC()); err != nil {
			return nil, err
		}
		slog.Info("password changed, prior tokens invalidated",
			slog.String("user_id", id),
		)
	}

	name := current.Name
	if input.Name != "" {
		name = sanitize.Plain(input.Name)
	}
	address := current.Address
	if input.Address != "" {
		address = sanitize.Plain(input.Address)
	}

	if err := s.repo.UpdateProfile(ctx, id, name, address, time.Now().UTC()); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// DeleteUser removes a user.
func (s *service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// --- auth.CredentialSource ---

// FetchCredentialByUsername returns the stored verification material for the
// auth gate. Absence propagates as the repository's NotFound error.
func (s *service) FetchCredentialByUsername(ctx context.Context, username string) (*auth.Credential, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &auth.Credential{
		UserID:       u.ID,
		PasswordHash: u.PasswordHash,
		Salt:         u.Salt,
	}, nil
}

// FetchIdentity returns the identity slice the auth gate needs for the
// token-staleness check.
func (s *service) FetchIdentity(ctx context.Context, userID string) (*auth.Identity, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &auth.Identity{
		UserID:            u.ID,
		Username:          u.Username,
		PasswordChangedAt: u.PasswordChangedAt,
	}, nil
}

// hashPassword derives a stored hash for a new or changed password,
// generating a fresh salt when the default algorithm needs one. The salt is
// created exactly once per credential; it changes only here.
func (s *service) hashPassword(plain string) (hash, salt string, err error) {
	if s.hasher.NeedsSalt() {
		salt, err = password.GenerateSalt(s.pepper)
		if err != nil {
			return "", "", err
		}
	}
	hash, err = s.hasher.Hash(plain, salt)
	if err != nil {
		return "", "", err
	}
	return hash, salt, nil
}
