// Package auth implements the identity provider: it turns credentials
// into an authenticated owner identity, or rejects the request.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, user TokenSubject) (string, error)

	// ValidateToken validates the provided access token string and
	// extracts the claims, or returns an error if validation fails
	// (expired, invalid signature, wrong type, ...).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// TokenSubject carries the identity facts baked into a token.
type TokenSubject struct {
	// UserID is the account's unique identifier.
	UserID uuid.UUID

	// Username is the owner identity string stamped onto cash cards.
	Username string

	// Role is the coarse authorization role (e.g. card-owner).
	Role string
}

// Claims represents the validated content of a JWT access token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Username is the authenticated owner identity.
	Username string `json:"username,omitempty"`

	// Role is the coarse authorization role carried by the token.
	Role string `json:"role,omitempty"`

	// TokenType indicates the purpose of the token ("access").
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
