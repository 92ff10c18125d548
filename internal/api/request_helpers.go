package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/maxsplawski/cashcard-rest-api/internal/api/shared"
	"github.com/maxsplawski/cashcard-rest-api/internal/store"
)

// getOwnerFromContext extracts the authenticated owner identity from the
// request context. The identity is placed there by the auth middleware.
func getOwnerFromContext(r *http.Request) (string, bool) {
	return shared.GetOwner(r.Context())
}

// getPathCardID extracts the cash card ID from the URL path.
// Returns an error if the parameter is missing or not a valid integer.
func getPathCardID(r *http.Request) (int64, error) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		return 0, fmt.Errorf("card ID is required")
	}

	id, err := strconv.ParseInt(pathID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("card ID must be an integer")
	}

	return id, nil
}

// parsePageRequest builds a store.PageRequest from the page, size, and
// sort query parameters. Absent parameters fall back to the documented
// defaults (page 0, size 20, amount ascending); malformed values are a
// client error. The sort parameter uses "field" or "field,direction"
// form, e.g. sort=amount,desc.
func parsePageRequest(r *http.Request) (store.PageRequest, error) {
	page := store.DefaultPageRequest()
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return store.PageRequest{}, fmt.Errorf("page must be a non-negative integer")
		}
		page.Page = n
	}

	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return store.PageRequest{}, fmt.Errorf("size must be a positive integer")
		}
		page.Size = n
	}

	if raw := q.Get("sort"); raw != "" {
		field, dir, hasDir := strings.Cut(raw, ",")
		switch field {
		case store.SortFieldAmount, store.SortFieldID:
			page.SortField = field
		default:
			return store.PageRequest{}, fmt.Errorf("unsupported sort field %q", field)
		}

		if hasDir {
			switch strings.ToLower(dir) {
			case store.SortAsc, store.SortDesc:
				page.SortDir = strings.ToLower(dir)
			default:
				return store.PageRequest{}, fmt.Errorf("sort direction must be asc or desc")
			}
		}
	}

	return page, nil
}
