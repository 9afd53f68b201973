package storage

import "errors"

// Common storage errors
var (
	// ErrStorageUnavailable indicates that the database file cannot be opened or initialized
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDuplicateName indicates that user with this name already exists
	ErrDuplicateName = errors.New("user name already exists")

	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrConcurrentModification indicates that stored hash no longer matches the expected one
	ErrConcurrentModification = errors.New("password hash was modified concurrently")

	// ErrInvariantViolated indicates that storage contents break the uniqueness invariant
	ErrInvariantViolated = errors.New("storage invariant violated")
)
