package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raymond9734/customer-admin-portal/internal/backend"
	"github.com/Raymond9734/customer-admin-portal/internal/config"
	"github.com/Raymond9734/customer-admin-portal/internal/handler"
	"github.com/Raymond9734/customer-admin-portal/internal/session"
	"github.com/Raymond9734/customer-admin-portal/internal/view"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting customer admin portal")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build session store
	store, err := newSessionStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize session store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	logger.Info("session store ready", slog.String("store", cfg.Session.Store))

	// Build backend API client
	backendClient := backend.New(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
	}, logger)

	logger.Info("backend client ready", slog.String("base_url", cfg.Backend.BaseURL))

	// Initialize view state and handlers
	loader := view.NewLoader(backendClient, logger)

	renderer, err := handler.NewRenderer(logger)
	if err != nil {
		logger.Error("failed to initialize renderer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loginHandler := handler.NewLoginHandler(backendClient, store, renderer, logger)
	customerHandler := handler.NewCustomerHandler(
		backendClient,
		store,
		loader,
		renderer,
		cfg.Server.DefaultPageSize,
		logger,
	)
	healthHandler := handler.NewHealthHandler(backendClient, store, logger)

	// Setup router
	router := handler.NewRouter(
		loginHandler,
		customerHandler,
		healthHandler,
		handler.RequireSession(store, logger),
		handler.RecoveryMiddleware(logger),
		handler.LoggingMiddleware(logger),
	)

	// Create server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("portal listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}

// newSessionStore builds the configured session store backend.
func newSessionStore(cfg *config.Config, logger *slog.Logger) (session.Store, error) {
	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour

	switch cfg.Session.Store {
	case "redis":
		return session.NewRedisStore(session.RedisConfig{
			URL: cfg.Session.RedisURL,
			TTL: ttl,
		}, logger)

	case "postgres":
		return session.NewPostgresStore(session.PostgresConfig{
			DSN: cfg.Session.Postgres.DSN(),
			TTL: ttl,
		}, logger)

	default:
		return session.NewMemoryStore(ttl), nil
	}
}
