package storage

import (
	"context"

	"github.com/iudanet/accountkeeper/internal/models"
)

// AccountStore defines interface for user account persistence
type AccountStore interface {
	// Initialize ensures the users table exists. Safe to call repeatedly.
	// Returns ErrStorageUnavailable if the medium cannot be prepared
	Initialize(ctx context.Context) error

	// ListUsers returns all users, empty slice if there are none
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateUser inserts a new user
	// Returns ErrDuplicateName if the name is taken
	CreateUser(ctx context.Context, user *models.User) error

	// UserExists reports whether a user with exactly this name exists
	UserExists(ctx context.Context, name string) (bool, error)

	// GetUser retrieves user by name
	// Returns ErrUserNotFound if user doesn't exist,
	// ErrInvariantViolated if more than one record matches
	GetUser(ctx context.Context, name string) (*models.User, error)

	// DeleteUser removes every user with this name
	// Deleting a missing name is a no-op
	DeleteUser(ctx context.Context, name string) error

	// UpdatePasswordHash replaces hash with newHash only if the stored hash equals oldHash
	// Returns ErrUserNotFound if user doesn't exist,
	// ErrConcurrentModification if the stored hash differs from oldHash
	UpdatePasswordHash(ctx context.Context, name, oldHash, newHash string) error

	// CountUsers returns the number of stored users
	CountUsers(ctx context.Context) (int, error)

	// Close releases the underlying file
	Close() error
}
