package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maxsplawski/cashcard-rest-api/internal/api/shared"
	"github.com/maxsplawski/cashcard-rest-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockJWTService implements auth.JWTService for middleware tests.
type mockJWTService struct {
	validateFn func(ctx context.Context, token string) (*auth.Claims, error)
}

func (m *mockJWTService) GenerateToken(ctx context.Context, subject auth.TokenSubject) (string, error) {
	return "", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	return m.validateFn(ctx, token)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	validClaims := &auth.Claims{
		Username:  "sarah1",
		Role:      "card-owner",
		TokenType: "access",
	}

	tests := []struct {
		name           string
		authHeader     string
		validateFn     func(ctx context.Context, token string) (*auth.Claims, error)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:       "valid token reaches the handler with identity set",
			authHeader: "Bearer good-token",
			validateFn: func(ctx context.Context, token string) (*auth.Claims, error) {
				assert.Equal(t, "good-token", token)
				return validClaims, nil
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header is unauthorized",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non-bearer scheme is unauthorized",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token is unauthorized",
			authHeader: "Bearer stale-token",
			validateFn: func(ctx context.Context, token string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredToken
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token is unauthorized",
			authHeader: "Bearer bad-token",
			validateFn: func(ctx context.Context, token string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "claims without a username are unauthorized",
			authHeader: "Bearer odd-token",
			validateFn: func(ctx context.Context, token string) (*auth.Claims, error) {
				return &auth.Claims{Role: "card-owner"}, nil
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				owner, ok := shared.GetOwner(r.Context())
				require.True(t, ok)
				assert.Equal(t, "sarah1", owner)

				role, ok := shared.GetRole(r.Context())
				require.True(t, ok)
				assert.Equal(t, "card-owner", role)

				w.WriteHeader(http.StatusOK)
			})

			m := NewAuthMiddleware(&mockJWTService{validateFn: tc.validateFn})
			req := httptest.NewRequest("GET", "/cashcards", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectNext, nextCalled)
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{name: "matching role passes", role: "card-owner", expectedStatus: http.StatusOK},
		{name: "different role is forbidden", role: "auditor", expectedStatus: http.StatusForbidden},
		{name: "absent role is forbidden", role: "", expectedStatus: http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/cashcards", nil)
			if tc.role != "" {
				ctx := context.WithValue(req.Context(), shared.RoleContextKey, tc.role)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			RequireRole("card-owner")(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}
