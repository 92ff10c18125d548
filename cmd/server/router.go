package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maxsplawski/cashcard-rest-api/internal/api"
	apiMiddleware "github.com/maxsplawski/cashcard-rest-api/internal/api/middleware"
	"github.com/maxsplawski/cashcard-rest-api/internal/domain"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Authentication failures are rejected in the
// middleware chain before any card handler runs; the role gate sits
// between authentication and the card routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordHasher,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	cardHandler := api.NewCashCardHandler(app.cardService, app.logger)

	// Authentication endpoints (public)
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// Cash card endpoints (authenticated, card-owner role required)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Use(apiMiddleware.RequireRole(domain.RoleCardOwner))

		r.Get("/cashcards", cardHandler.List)
		r.Get("/cashcards/{id}", cardHandler.GetByID)
		r.Post("/cashcards", cardHandler.Create)
		r.Put("/cashcards/{id}", cardHandler.Update)
		r.Delete("/cashcards/{id}", cardHandler.Delete)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
