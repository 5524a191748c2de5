package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/esa-nhy/gatehouse/internal/apperror"
)

// Repository defines the data access contract for user records.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, id, name, address string, updatedAt time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash, salt string, changedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// mariadbRepository implements Repository with hand-written MariaDB queries.
type mariadbRepository struct {
	db *sql.DB
}

// NewRepository creates a user repository backed by the given DB pool.
func NewRepository(db *sql.DB) Repository {
	return &mariadbRepository{db: db}
}

// userColumns is the scan order shared by every single-row query.
const userColumns = `id, username, name, address, password_hash, salt,
	password_changed_at, created_at, updated_at`

// Create inserts a new user row.
func (r *mariadbRepository) Create(ctx context.Context, u *User) error {
	query := `INSERT INTO users (` + userColumns + `)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Name,
		u.Address,
		u.PasswordHash,
		u.Salt,
		u.PasswordChangedAt,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by their UUID.
// Returns apperror.NotFound if no user exists with this ID.
func (r *mariadbRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	u := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Name, &u.Address,
		&u.PasswordHash, &u.Salt, &u.PasswordChangedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return u, nil
}

// FindByUsername retrieves a user by their username.
// Returns apperror.NotFound if no user exists with this username.
func (r *mariadbRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	u := &User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Name, &u.Address,
		&u.PasswordHash, &u.Salt, &u.PasswordChangedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by username: %w", err)
	}

	return u, nil
}

// UsernameExists returns true if a user with the given username exists.
// Used during registration to check for duplicates before hashing the password.
func (r *mariadbRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking username existence: %w", err)
	}

	return exists, nil
}

// List returns all users ordered by creation date.
// Credential columns are deliberately excluded from this query.
func (r *mariadbRepository) List(ctx context.Context) ([]User, error) {
	query := `SELECT id, username, name, address, created_at, updated_at
	          FROM users ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Name, &u.Address, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// UpdateProfile updates the mutable profile fields.
func (r *mariadbRepository) UpdateProfile(ctx context.Context, id, name, address string, updatedAt time.Time) error {
	query := `UPDATE users SET name = ?, address = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, name, address, updatedAt, id)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("user not found")
	}

	return nil
}

// UpdatePassword replaces the stored hash and salt and stamps the change
// time. The changed-at stamp is what invalidates previously issued tokens.
func (r *mariadbRepository) UpdatePassword(ctx context.Context, id, passwordHash, salt string, changedAt time.Time) error {
	query := `UPDATE users
	          SET password_hash = ?, salt = ?, password_changed_at = ?, updated_at = ?
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, salt, changedAt, changedAt, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("user not found")
	}

	return nil
}

// Delete removes a user row. Deleting a missing user is a NotFound error.
func (r *mariadbRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("user not found")
	}

	return nil
}
