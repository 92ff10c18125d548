package api

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common request/response structures

// CashCardRequest defines the payload for card create and update
// endpoints. ID and Owner are accepted for wire compatibility but
// ignored: the store assigns IDs and the authenticated caller's
// identity is always pinned as the owner.
type CashCardRequest struct {
	ID     *int64          `json:"id,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Owner  string          `json:"owner,omitempty"`
}

// CashCardResponse defines the JSON shape of a cash card.
type CashCardResponse struct {
	ID     int64           `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Owner  string          `json:"owner"`
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Username is the owner identity the token authenticates as
	Username string `json:"username"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`
}
