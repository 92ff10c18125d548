package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooLong     = errors.New("username must be at most 64 characters long")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Roles assignable to a user. The role is a coarse gate checked before
// any per-card ownership filtering: a principal without RoleCardOwner is
// rejected outright, it never reaches the card endpoints.
const (
	RoleCardOwner = "card-owner"
)

// User represents a registered account. The Username doubles as the
// owner identity string stamped onto every cash card the user creates.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext, only populated during registration
	HashedPassword string    `json:"-"` // Never exposed in JSON
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and plaintext
// password and the default card-owner role. The caller is responsible
// for hashing the password before storing the user.
func NewUser(username, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		Role:      RoleCardOwner,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}

	if len(u.Username) > 64 {
		return ErrUsernameTooLong
	}

	// Plaintext password is only present during registration; bcrypt
	// rejects inputs over 72 bytes, so cap it here.
	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
		return nil
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}
