package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/maxsplawski/cashcard-rest-api/internal/config"
	"github.com/maxsplawski/cashcard-rest-api/internal/platform/postgres"
	"github.com/maxsplawski/cashcard-rest-api/internal/service"
	"github.com/maxsplawski/cashcard-rest-api/internal/service/auth"
	"github.com/maxsplawski/cashcard-rest-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	cardStore store.CashCardStore

	// Service interfaces
	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher
	cardService    service.CashCardService
}

// newApplication opens the database, applies migrations, and wires every
// dependency the server needs.
func newApplication(cfg *config.Config) (*application, error) {
	log := slog.Default()

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancelMigrate()
	if err := postgres.RunMigrations(migrateCtx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	cardStore := postgres.NewPostgresCashCardStore(db, log)
	cardService, err := service.NewCashCardService(cardStore, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cash card service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         log,
		db:             db,
		userStore:      postgres.NewPostgresUserStore(db, log),
		cardStore:      cardStore,
		jwtService:     jwtService,
		passwordHasher: auth.NewBcryptHasher(0),
		cardService:    cardService,
	}, nil
}

// run starts the HTTP server and blocks until the process receives
// SIGINT or SIGTERM, then shuts the server down gracefully.
func (app *application) run() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		app.logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

// close releases the application's long-lived resources.
func (app *application) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
