package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants wrap it so callers can match
	// either level with errors.Is.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specifics.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCashCardNotFound indicates the requested cash card does not
	// exist for the calling owner. A card owned by someone else produces
	// this same error: the store never distinguishes "missing" from
	// "not yours".
	ErrCashCardNotFound = fmt.Errorf("%w: cash card", ErrNotFound)

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrUsernameExists indicates a user with the given username already
	// exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
