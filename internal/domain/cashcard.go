package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Cash card validation errors
var (
	// ErrCashCardOwnerEmpty is returned when a cash card has no owner.
	ErrCashCardOwnerEmpty = errors.New("cash card owner cannot be empty")

	// ErrCashCardIDInvalid is returned when a persisted cash card carries
	// a non-positive ID.
	ErrCashCardIDInvalid = errors.New("cash card ID must be positive")
)

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// CashCard represents a single stored-value card belonging to one owner.
// The ID is assigned by the store on creation; a zero ID marks a card
// that has not been persisted yet. Owner is set from the authenticated
// caller's identity and never changes afterwards.
type CashCard struct {
	ID     int64           `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Owner  string          `json:"owner"`
}

// NewCashCard creates an unsaved CashCard with the given amount and owner.
// The amount is accepted as-is: negative and zero values carry no special
// meaning at this layer. Returns an error if validation fails.
func NewCashCard(amount decimal.Decimal, owner string) (*CashCard, error) {
	card := &CashCard{
		Amount: amount,
		Owner:  owner,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks the CashCard's invariants. A zero ID is allowed because
// cards are validated before the store assigns one.
func (c *CashCard) Validate() error {
	if c.ID < 0 {
		return ErrCashCardIDInvalid
	}

	if c.Owner == "" {
		return ErrCashCardOwnerEmpty
	}

	return nil
}
