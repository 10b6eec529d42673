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

	"github.com/Raymond9734/customer-registry/internal/config"
	"github.com/Raymond9734/customer-registry/internal/db"
	"github.com/Raymond9734/customer-registry/internal/handler"
	"github.com/Raymond9734/customer-registry/internal/queue"
	"github.com/Raymond9734/customer-registry/internal/repository"
	"github.com/Raymond9734/customer-registry/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	logger.Info("starting customer registry API server",
		slog.String("store", cfg.Store.Driver),
		slog.Bool("events_enabled", cfg.Queue.Enabled),
	)

	ctx := context.Background()

	// Select the customer store
	var (
		customerRepo repository.CustomerRepository
		dbChecker    handler.HealthChecker
	)

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		database, err := db.Open(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.Close()

		if err := repository.EnsureCustomerSchema(ctx, database.DB); err != nil {
			logger.Error("failed to prepare schema", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("connected to database")
		customerRepo = repository.NewCustomerRepository(database.DB)
		dbChecker = database

	default:
		customerRepo = repository.NewMemoryCustomerRepository()
	}

	// Connect to Redis queue when events are enabled
	var queueClient queue.Client
	if cfg.Queue.Enabled {
		queueClient, err = queue.NewRedisClient(queue.RedisConfig{
			URL:       cfg.Queue.RedisURL,
			QueueName: cfg.Queue.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer queueClient.Close()

		logger.Info("connected to Redis queue", slog.String("queue", cfg.Queue.QueueName))
	}

	// Initialize services
	customerSvc := service.NewCustomerService(customerRepo, queueClient, service.CustomerServiceConfig{
		DisallowedEmailDomains: cfg.Registration.DisallowedEmailDomains,
		PasswordHashCost:       cfg.Registration.PasswordHashCost,
	}, logger)

	// Initialize handlers
	customerHandler := handler.NewCustomerHandler(customerSvc, logger)
	healthHandler := handler.NewHealthHandler(dbChecker, queueClient, logger)

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(customerHandler, healthHandler, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
