package store

import (
	"context"

	"github.com/maxsplawski/cashcard-rest-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Sort directions accepted by FindAllByOwner.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sortable cash card fields. ORDER BY clauses are built from this
// whitelist only, never from raw request input.
const (
	SortFieldAmount = "amount"
	SortFieldID     = "id"
)

// Pagination defaults. These mirror the documented listing behavior:
// first page, twenty records, cheapest card first.
const (
	DefaultPage      = 0
	DefaultPageSize  = 20
	DefaultSortField = SortFieldAmount
	DefaultSortDir   = SortAsc
)

// PageRequest describes one page of an owner's cards: a zero-based page
// number, a page size, and a sort field with direction.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	SortDir   string
}

// DefaultPageRequest returns the PageRequest used when a request
// carries no pagination parameters.
func DefaultPageRequest() PageRequest {
	return PageRequest{
		Page:      DefaultPage,
		Size:      DefaultPageSize,
		SortField: DefaultSortField,
		SortDir:   DefaultSortDir,
	}
}

// Normalize replaces out-of-range or missing values with the defaults.
// A negative page becomes the first page and a non-positive size becomes
// the default size; a page beyond the data is NOT an error, the store
// simply returns an empty result for it.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.SortField == "" {
		p.SortField = DefaultSortField
	}
	if p.SortDir != SortAsc && p.SortDir != SortDesc {
		p.SortDir = DefaultSortDir
	}
	return p
}

// Offset returns the number of records to skip for this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// CashCardStore defines the interface for cash card persistence.
//
// Every mutation and single-record read that takes an owner is filtered
// by (id, owner) in one query. Callers never get to observe whether an
// id exists under a different owner: both cases surface as
// ErrCashCardNotFound.
type CashCardStore interface {
	// Create saves a new card and returns it with its store-assigned ID.
	// The incoming card's ID is ignored; IDs are never reused.
	Create(ctx context.Context, card *domain.CashCard) (*domain.CashCard, error)

	// GetByID retrieves a card by ID alone, with no ownership filter.
	// Returns ErrCashCardNotFound if no such card exists.
	//
	// The card access service deliberately never calls this: exposing it
	// to request handling would open a distinguishable "exists but not
	// yours" path. It is part of the store contract for administrative
	// and test use only.
	GetByID(ctx context.Context, id int64) (*domain.CashCard, error)

	// GetByIDAndOwner retrieves the card with the given ID if and only
	// if it belongs to owner. Returns ErrCashCardNotFound otherwise.
	GetByIDAndOwner(ctx context.Context, id int64, owner string) (*domain.CashCard, error)

	// FindAllByOwner returns one page of the owner's cards ordered by
	// the page request's sort field and direction, ties broken by ID.
	// A page past the end of the data yields an empty slice, not an error.
	FindAllByOwner(ctx context.Context, owner string, page PageRequest) ([]*domain.CashCard, error)

	// UpdateAmount replaces the amount of the card with the given ID if
	// it belongs to owner. ID and owner are left untouched.
	// Returns ErrCashCardNotFound if the (id, owner) pair matches nothing.
	UpdateAmount(ctx context.Context, id int64, owner string, amount decimal.Decimal) error

	// Delete removes the card with the given ID if it belongs to owner.
	// Returns ErrCashCardNotFound if the (id, owner) pair matches nothing.
	Delete(ctx context.Context, id int64, owner string) error
}
