package postgres

import (
	"testing"

	"github.com/maxsplawski/cashcard-rest-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestOrderByClause(t *testing.T) {
	tests := []struct {
		name string
		page store.PageRequest
		want string
	}{
		{
			name: "default sort",
			page: store.DefaultPageRequest(),
			want: "amount ASC, id ASC",
		},
		{
			name: "amount descending keeps ascending ID tie-break",
			page: store.PageRequest{SortField: store.SortFieldAmount, SortDir: store.SortDesc},
			want: "amount DESC, id ASC",
		},
		{
			name: "ID sort has no redundant tie-break",
			page: store.PageRequest{SortField: store.SortFieldID, SortDir: store.SortDesc},
			want: "id DESC",
		},
		{
			name: "unknown field falls back to the default column",
			page: store.PageRequest{SortField: "owner; DROP TABLE cash_cards", SortDir: store.SortAsc},
			want: "amount ASC, id ASC",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, orderByClause(tc.page))
		})
	}
}

func TestNewPostgresCashCardStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() {
		NewPostgresCashCardStore(nil, nil)
	})
}

func TestNewPostgresUserStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() {
		NewPostgresUserStore(nil, nil)
	})
}
