package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maxsplawski/cashcard-rest-api/internal/domain"
	"github.com/maxsplawski/cashcard-rest-api/internal/store"
	"github.com/shopspring/decimal"
)

// CashCardService provides ownership-scoped cash card operations.
//
// Error contract: operations on a card that does not exist and
// operations on a card owned by someone else both return
// store.ErrCashCardNotFound. Callers cannot tell the two apart, which
// keeps the existence of other owners' cards undisclosed.
type CashCardService interface {
	// List returns one page of the owner's cards ordered per the page
	// request. A page past the end of the data is an empty slice.
	List(ctx context.Context, owner string, page store.PageRequest) ([]*domain.CashCard, error)

	// GetByID returns the card with the given ID if the owner holds it.
	GetByID(ctx context.Context, id int64, owner string) (*domain.CashCard, error)

	// Create stores a new card with the given amount under the owner's
	// identity and returns it with its assigned ID. Any client-supplied
	// ID or owner never reaches this layer.
	Create(ctx context.Context, amount decimal.Decimal, owner string) (*domain.CashCard, error)

	// Update replaces the amount of the owner's card with the given ID.
	// ID and owner are preserved.
	Update(ctx context.Context, id int64, owner string, amount decimal.Decimal) error

	// Delete removes the owner's card with the given ID.
	Delete(ctx context.Context, id int64, owner string) error
}

// cashCardServiceImpl implements the CashCardService interface.
type cashCardServiceImpl struct {
	cardStore store.CashCardStore
	logger    *slog.Logger
}

// NewCashCardService creates a new CashCardService.
// It returns an error if any of the required dependencies are nil.
func NewCashCardService(cardStore store.CashCardStore, logger *slog.Logger) (CashCardService, error) {
	if cardStore == nil {
		return nil, fmt.Errorf("card store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &cashCardServiceImpl{
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "cashcard_service")),
	}, nil
}

// List implements CashCardService.List
func (s *cashCardServiceImpl) List(ctx context.Context, owner string, page store.PageRequest) ([]*domain.CashCard, error) {
	return s.cardStore.FindAllByOwner(ctx, owner, page.Normalize())
}

// GetByID implements CashCardService.GetByID
// The lookup is a single (id, owner) query; there is no separate
// "fetch then compare owner" step anywhere in this service.
func (s *cashCardServiceImpl) GetByID(ctx context.Context, id int64, owner string) (*domain.CashCard, error) {
	return s.cardStore.GetByIDAndOwner(ctx, id, owner)
}

// Create implements CashCardService.Create
func (s *cashCardServiceImpl) Create(ctx context.Context, amount decimal.Decimal, owner string) (*domain.CashCard, error) {
	card, err := domain.NewCashCard(amount, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	created, err := s.cardStore.Create(ctx, card)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("cash card created",
		slog.Int64("card_id", created.ID),
		slog.String("owner", created.Owner))
	return created, nil
}

// Update implements CashCardService.Update
// Only the amount changes; the store statement pins the row by
// (id, owner), so ownership can never be reassigned through an update.
func (s *cashCardServiceImpl) Update(ctx context.Context, id int64, owner string, amount decimal.Decimal) error {
	return s.cardStore.UpdateAmount(ctx, id, owner, amount)
}

// Delete implements CashCardService.Delete
func (s *cashCardServiceImpl) Delete(ctx context.Context, id int64, owner string) error {
	return s.cardStore.Delete(ctx, id, owner)
}
