package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/maxsplawski/cashcard-rest-api/internal/domain"
)

// UserStore defines the interface for user account persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
