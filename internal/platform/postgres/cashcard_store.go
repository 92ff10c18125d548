package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maxsplawski/cashcard-rest-api/internal/domain"
	"github.com/maxsplawski/cashcard-rest-api/internal/platform/logger"
	"github.com/maxsplawski/cashcard-rest-api/internal/store"
	"github.com/shopspring/decimal"
)

// sortColumns maps request-level sort fields to the columns they order
// by. ORDER BY cannot take bind parameters, so the clause is assembled
// from this whitelist only.
var sortColumns = map[string]string{
	store.SortFieldAmount: "amount",
	store.SortFieldID:     "id",
}

// PostgresCashCardStore implements the store.CashCardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCashCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCashCardStore creates a new PostgreSQL implementation of the
// CashCardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCashCardStore(db store.DBTX, logger *slog.Logger) *PostgresCashCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCashCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "cashcard_store")),
	}
}

// Ensure PostgresCashCardStore implements store.CashCardStore interface
var _ store.CashCardStore = (*PostgresCashCardStore)(nil)

// Create implements store.CashCardStore.Create
// It inserts the card and returns a copy carrying the BIGSERIAL ID the
// database assigned. The incoming card's ID is ignored.
func (s *PostgresCashCardStore) Create(ctx context.Context, card *domain.CashCard) (*domain.CashCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("cash card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("owner", card.Owner))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO cash_cards (amount, owner)
		VALUES ($1, $2)
		RETURNING id
	`

	created := &domain.CashCard{
		Amount: card.Amount,
		Owner:  card.Owner,
	}

	err := s.db.QueryRowContext(ctx, query, card.Amount, card.Owner).Scan(&created.ID)
	if err != nil {
		log.Error("failed to create cash card",
			slog.String("error", err.Error()),
			slog.String("owner", card.Owner))
		return nil, err
	}

	log.Info("cash card created successfully",
		slog.Int64("card_id", created.ID),
		slog.String("owner", created.Owner))
	return created, nil
}

// GetByID implements store.CashCardStore.GetByID
// It looks a card up by ID alone, with no ownership filter. Request
// handling never uses this path; see the interface documentation.
func (s *PostgresCashCardStore) GetByID(ctx context.Context, id int64) (*domain.CashCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, amount, owner
		FROM cash_cards
		WHERE id = $1
	`

	var card domain.CashCard
	err := s.db.QueryRowContext(ctx, query, id).Scan(&card.ID, &card.Amount, &card.Owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCashCardNotFound
		}
		log.Error("failed to get cash card by ID",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return nil, err
	}

	return &card, nil
}

// GetByIDAndOwner implements store.CashCardStore.GetByIDAndOwner
// The ownership check is part of the WHERE clause, so a card owned by
// someone else and a card that does not exist produce the identical
// store.ErrCashCardNotFound.
func (s *PostgresCashCardStore) GetByIDAndOwner(ctx context.Context, id int64, owner string) (*domain.CashCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, amount, owner
		FROM cash_cards
		WHERE id = $1 AND owner = $2
	`

	var card domain.CashCard
	err := s.db.QueryRowContext(ctx, query, id, owner).Scan(&card.ID, &card.Amount, &card.Owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("cash card not found for owner",
				slog.Int64("card_id", id),
				slog.String("owner", owner))
			return nil, store.ErrCashCardNotFound
		}
		log.Error("failed to get cash card by ID and owner",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return nil, err
	}

	return &card, nil
}

// FindAllByOwner implements store.CashCardStore.FindAllByOwner
// It returns one page of the owner's cards. Sorting is total: the
// requested field orders the page and ID breaks ties, so equal amounts
// always come back in the same order.
func (s *PostgresCashCardStore) FindAllByOwner(ctx context.Context, owner string, page store.PageRequest) ([]*domain.CashCard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	page = page.Normalize()

	query := fmt.Sprintf(`
		SELECT id, amount, owner
		FROM cash_cards
		WHERE owner = $1
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, orderByClause(page))

	rows, err := s.db.QueryContext(ctx, query, owner, page.Size, page.Offset())
	if err != nil {
		log.Error("failed to query cash cards by owner",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var cards []*domain.CashCard
	for rows.Next() {
		var card domain.CashCard
		if err := rows.Scan(&card.ID, &card.Amount, &card.Owner); err != nil {
			log.Error("failed to scan cash card row",
				slog.String("error", err.Error()))
			return nil, err
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// A page past the end of the data is an empty result, not nil and
	// not an error.
	if cards == nil {
		cards = []*domain.CashCard{}
	}

	log.Debug("found cash cards for owner",
		slog.String("owner", owner),
		slog.Int("count", len(cards)),
		slog.Int("page", page.Page))
	return cards, nil
}

// UpdateAmount implements store.CashCardStore.UpdateAmount
// The (id, owner) pair is matched in a single statement; zero rows
// affected means not-found-or-not-yours, reported as one error.
func (s *PostgresCashCardStore) UpdateAmount(ctx context.Context, id int64, owner string, amount decimal.Decimal) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE cash_cards
		SET amount = $1
		WHERE id = $2 AND owner = $3
	`

	result, err := s.db.ExecContext(ctx, query, amount, id, owner)
	if err != nil {
		log.Error("failed to update cash card amount",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("cash card not found for update",
			slog.Int64("card_id", id),
			slog.String("owner", owner))
		return store.ErrCashCardNotFound
	}

	log.Info("cash card amount updated successfully",
		slog.Int64("card_id", id),
		slog.String("owner", owner))
	return nil
}

// Delete implements store.CashCardStore.Delete
func (s *PostgresCashCardStore) Delete(ctx context.Context, id int64, owner string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM cash_cards
		WHERE id = $1 AND owner = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		log.Error("failed to delete cash card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("cash card not found for delete",
			slog.Int64("card_id", id),
			slog.String("owner", owner))
		return store.ErrCashCardNotFound
	}

	log.Info("cash card deleted successfully",
		slog.Int64("card_id", id),
		slog.String("owner", owner))
	return nil
}

// orderByClause builds the ORDER BY body for a normalized page request.
// Unknown sort fields fall back to the default; ID is appended as a
// tie-break unless it is already the sort field.
func orderByClause(page store.PageRequest) string {
	column, ok := sortColumns[page.SortField]
	if !ok {
		column = sortColumns[store.DefaultSortField]
	}

	direction := "ASC"
	if page.SortDir == store.SortDesc {
		direction = "DESC"
	}

	if column == "id" {
		return fmt.Sprintf("id %s", direction)
	}
	return fmt.Sprintf("%s %s, id ASC", column, direction)
}
