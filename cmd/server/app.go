package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/wishlist-api/internal/config"
	"github.com/phrazzld/wishlist-api/internal/platform/postgres"
	"github.com/phrazzld/wishlist-api/internal/service"
	"github.com/phrazzld/wishlist-api/internal/service/auth"
	"github.com/phrazzld/wishlist-api/internal/store"
	"github.com/phrazzld/wishlist-api/internal/store/memory"
)

// shutdownTimeout bounds how long in-flight requests get to drain.
const shutdownTimeout = 10 * time.Second

// application holds the wired components of the server.
type application struct {
	config        *config.Config
	logger        *slog.Logger
	wishStore     store.WishStore
	wishService   *service.WishService
	tokenResolver auth.TokenResolver
}

// newApplication wires the application from configuration. With a database
// URL configured the durable postgres store is used (after running
// migrations); otherwise the process-lifetime in-memory store.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	var wishStore store.WishStore
	if cfg.Database.URL != "" {
		db, err := openDatabase(cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := runMigrations(db); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		wishStore = postgres.NewPostgresWishStore(db, logger)
	} else {
		wishStore = memory.NewWishStore()
	}

	return &application{
		config:        cfg,
		logger:        logger,
		wishStore:     wishStore,
		wishService:   service.NewWishService(wishStore, logger),
		tokenResolver: auth.NewStaticTokenMap(cfg.Auth.TokenMapJSON),
	}, nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		app.logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
