// Package user implements the user-profile module: registration, profile
// CRUD backed by MariaDB, and the credential/identity lookups the auth
// package consumes.
package user

import (
	"time"
)

// User is the domain model for a registered user. Database scanning and JSON
// marshaling use this struct directly; the hash, salt, and password-change
// timestamp never appear in responses.
type User struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	PasswordHash      string    `json:"-"`
	Salt              string    `json:"-"` // empty for self-salting algorithms
	PasswordChangedAt time.Time `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted to create a user.
type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
	Address  string `json:"address" form:"address"`
}

// UpdateRequest holds a partial profile update. Empty fields are left
// untouched; a non-empty password triggers a re-hash and invalidates all
// previously issued tokens for the user.
type UpdateRequest struct {
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
	Address  string `json:"address" form:"address"`
}

// --- Service input DTOs (passed from handler to service) ---

// CreateInput is the validated input for creating a new user.
type CreateInput struct {
	Username string
	Password string
	Name     string
	Address  string
}

// UpdateInput is the validated input for modifying a user.
type UpdateInput struct {
	Password string
	Name     string
	Address  string
}
