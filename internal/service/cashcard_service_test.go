package service

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/maxsplawski/cashcard-rest-api/internal/domain"
	"github.com/maxsplawski/cashcard-rest-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCardStore is an in-memory CashCardStore with the same observable
// semantics as the Postgres implementation: combined (id, owner)
// lookups, deterministic sorting with an ID tie-break, and empty pages
// past the end of the data.
type fakeCardStore struct {
	cards  map[int64]*domain.CashCard
	nextID int64
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[int64]*domain.CashCard), nextID: 99}
}

func (f *fakeCardStore) Create(ctx context.Context, card *domain.CashCard) (*domain.CashCard, error) {
	created := &domain.CashCard{ID: f.nextID, Amount: card.Amount, Owner: card.Owner}
	f.cards[created.ID] = created
	f.nextID++
	return created, nil
}

func (f *fakeCardStore) GetByID(ctx context.Context, id int64) (*domain.CashCard, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, store.ErrCashCardNotFound
	}
	copied := *card
	return &copied, nil
}

func (f *fakeCardStore) GetByIDAndOwner(ctx context.Context, id int64, owner string) (*domain.CashCard, error) {
	card, ok := f.cards[id]
	if !ok || card.Owner != owner {
		return nil, store.ErrCashCardNotFound
	}
	copied := *card
	return &copied, nil
}

func (f *fakeCardStore) FindAllByOwner(ctx context.Context, owner string, page store.PageRequest) ([]*domain.CashCard, error) {
	page = page.Normalize()

	var owned []*domain.CashCard
	for _, card := range f.cards {
		if card.Owner == owner {
			copied := *card
			owned = append(owned, &copied)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		var cmp int
		switch page.SortField {
		case store.SortFieldID:
			switch {
			case owned[i].ID < owned[j].ID:
				cmp = -1
			case owned[i].ID > owned[j].ID:
				cmp = 1
			}
		default:
			cmp = owned[i].Amount.Cmp(owned[j].Amount)
		}
		if cmp == 0 {
			return owned[i].ID < owned[j].ID
		}
		if page.SortDir == store.SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})

	start := page.Offset()
	if start >= len(owned) {
		return []*domain.CashCard{}, nil
	}
	end := start + page.Size
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], nil
}

func (f *fakeCardStore) UpdateAmount(ctx context.Context, id int64, owner string, amount decimal.Decimal) error {
	card, ok := f.cards[id]
	if !ok || card.Owner != owner {
		return store.ErrCashCardNotFound
	}
	card.Amount = amount
	return nil
}

func (f *fakeCardStore) Delete(ctx context.Context, id int64, owner string) error {
	card, ok := f.cards[id]
	if !ok || card.Owner != owner {
		return store.ErrCashCardNotFound
	}
	delete(f.cards, id)
	return nil
}

var _ store.CashCardStore = (*fakeCardStore)(nil)

func newTestService(t *testing.T) (CashCardService, *fakeCardStore) {
	t.Helper()
	cardStore := newFakeCardStore()
	svc, err := NewCashCardService(cardStore, slog.Default())
	require.NoError(t, err)
	return svc, cardStore
}

func mustCreate(t *testing.T, svc CashCardService, amount float64, owner string) *domain.CashCard {
	t.Helper()
	card, err := svc.Create(context.Background(), decimal.NewFromFloat(amount), owner)
	require.NoError(t, err)
	return card
}

func TestNewCashCardService(t *testing.T) {
	_, err := NewCashCardService(nil, slog.Default())
	assert.Error(t, err)

	_, err = NewCashCardService(newFakeCardStore(), nil)
	assert.Error(t, err)
}

func TestCreateAssignsIDAndPinsOwner(t *testing.T) {
	svc, _ := newTestService(t)

	card := mustCreate(t, svc, 250.00, "sarah1")
	assert.NotZero(t, card.ID)
	assert.Equal(t, "sarah1", card.Owner)
	assert.True(t, card.Amount.Equal(decimal.NewFromFloat(250.00)))

	// Round trip under the same owner preserves amount and owner.
	fetched, err := svc.GetByID(context.Background(), card.ID, "sarah1")
	require.NoError(t, err)
	assert.Equal(t, card.ID, fetched.ID)
	assert.True(t, fetched.Amount.Equal(decimal.NewFromFloat(250.00)))
	assert.Equal(t, "sarah1", fetched.Owner)
}

func TestCreateRejectsEmptyOwner(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), decimal.NewFromFloat(1.00), "")
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestGetByIDDoesNotDiscloseForeignCards(t *testing.T) {
	svc, _ := newTestService(t)
	card := mustCreate(t, svc, 123.45, "sarah1")

	// Another owner's request and a request for a nonexistent ID are
	// observably identical.
	_, errForeign := svc.GetByID(context.Background(), card.ID, "hank")
	_, errMissing := svc.GetByID(context.Background(), 99999, "hank")

	assert.ErrorIs(t, errForeign, store.ErrCashCardNotFound)
	assert.ErrorIs(t, errMissing, store.ErrCashCardNotFound)
	assert.Equal(t, errMissing, errForeign)
}

func TestUpdateChangesOnlyAmount(t *testing.T) {
	svc, _ := newTestService(t)
	card := mustCreate(t, svc, 123.45, "sarah1")

	err := svc.Update(context.Background(), card.ID, "sarah1", decimal.NewFromFloat(19.99))
	require.NoError(t, err)

	updated, err := svc.GetByID(context.Background(), card.ID, "sarah1")
	require.NoError(t, err)
	assert.Equal(t, card.ID, updated.ID)
	assert.Equal(t, "sarah1", updated.Owner)
	assert.True(t, updated.Amount.Equal(decimal.NewFromFloat(19.99)))
}

func TestUpdateByNonOwnerIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	card := mustCreate(t, svc, 123.45, "sarah1")

	err := svc.Update(context.Background(), card.ID, "hank", decimal.NewFromFloat(0.01))
	assert.ErrorIs(t, err, store.ErrCashCardNotFound)

	// The card is unchanged for its actual owner.
	unchanged, err := svc.GetByID(context.Background(), card.ID, "sarah1")
	require.NoError(t, err)
	assert.True(t, unchanged.Amount.Equal(decimal.NewFromFloat(123.45)))
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	svc, _ := newTestService(t)
	card := mustCreate(t, svc, 123.45, "sarah1")

	// A foreign delete reports not found and leaves the card in place.
	err := svc.Delete(context.Background(), card.ID, "hank")
	assert.ErrorIs(t, err, store.ErrCashCardNotFound)

	still, err := svc.GetByID(context.Background(), card.ID, "sarah1")
	require.NoError(t, err)
	assert.Equal(t, card.ID, still.ID)

	// The owner's delete succeeds and the card is gone afterwards.
	require.NoError(t, svc.Delete(context.Background(), card.ID, "sarah1"))
	_, err = svc.GetByID(context.Background(), card.ID, "sarah1")
	assert.ErrorIs(t, err, store.ErrCashCardNotFound)
}

func TestListIsOwnerScopedAndSorted(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreate(t, svc, 123.45, "sarah1")
	mustCreate(t, svc, 1.00, "sarah1")
	mustCreate(t, svc, 150.00, "sarah1")
	mustCreate(t, svc, 999.99, "hank")

	t.Run("defaults sort ascending by amount", func(t *testing.T) {
		cards, err := svc.List(context.Background(), "sarah1", store.PageRequest{})
		require.NoError(t, err)
		require.Len(t, cards, 3)

		amounts := []string{
			cards[0].Amount.String(),
			cards[1].Amount.String(),
			cards[2].Amount.String(),
		}
		assert.Equal(t, []string{"1", "123.45", "150"}, amounts)
		for _, card := range cards {
			assert.Equal(t, "sarah1", card.Owner)
		}
	})

	t.Run("single descending page returns the largest amount", func(t *testing.T) {
		cards, err := svc.List(context.Background(), "sarah1", store.PageRequest{
			Page:      0,
			Size:      1,
			SortField: store.SortFieldAmount,
			SortDir:   store.SortDesc,
		})
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.True(t, cards[0].Amount.Equal(decimal.NewFromFloat(150.00)))
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		cards, err := svc.List(context.Background(), "sarah1", store.PageRequest{Page: 50, Size: 20})
		require.NoError(t, err)
		assert.Empty(t, cards)
	})

	t.Run("foreign cards never appear regardless of paging", func(t *testing.T) {
		cards, err := svc.List(context.Background(), "hank", store.PageRequest{Size: 100})
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.True(t, cards[0].Amount.Equal(decimal.NewFromFloat(999.99)))
	})
}
