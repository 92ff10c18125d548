package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/maxsplawski/cashcard-rest-api/internal/api/shared"
	"github.com/maxsplawski/cashcard-rest-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates JWT tokens from the Authorization header and
// adds the owner identity and role to the request context for
// authorized requests. Requests that fail here never reach a handler.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		token := parts[1]

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case auth.ErrInvalidToken, auth.ErrWrongTokenType:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", err)
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Authentication error",
				)
			}
			return
		}

		if claims.Username == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		// Thread the authenticated identity through the context
		ctx := context.WithValue(r.Context(), shared.OwnerContextKey, claims.Username)
		ctx = context.WithValue(ctx, shared.RoleContextKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole returns middleware enforcing the coarse role gate: an
// authenticated principal lacking the role is rejected with 403. This
// is deliberately distinct from per-card ownership, which surfaces as
// 404 to avoid disclosing whether a card exists.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := shared.GetRole(r.Context())
			if !ok || got != role {
				shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetOwner extracts the owner identity from the request context.
// Returns the identity and a boolean indicating if it was found.
func GetOwner(r *http.Request) (string, bool) {
	return shared.GetOwner(r.Context())
}
