package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Raymond9734/customer-registry/internal/config"
	"github.com/Raymond9734/customer-registry/internal/db"
	"github.com/Raymond9734/customer-registry/internal/queue"
	"github.com/Raymond9734/customer-registry/internal/repository"
	"github.com/Raymond9734/customer-registry/internal/service"
	"github.com/Raymond9734/customer-registry/internal/worker"
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

	logger.Info("starting welcome worker")

	// The in-memory store lives inside the API process, so the worker
	// can only see customers persisted in PostgreSQL.
	if cfg.Store.Driver != config.StoreDriverPostgres {
		logger.Error("welcome worker requires STORE_DRIVER=postgres", slog.String("store", cfg.Store.Driver))
		os.Exit(1)
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("connected to database")

	// Connect to Redis queue
	queueClient, err := queue.NewRedisClient(queue.RedisConfig{
		URL:       cfg.Queue.RedisURL,
		QueueName: cfg.Queue.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer queueClient.Close()

	logger.Info("connected to Redis queue")

	processor, err := worker.NewWelcomeProcessor(
		repository.NewCustomerRepository(database.DB),
		service.NewTemplateService(),
		worker.NewMockNotifier(worker.MockNotifierConfig{
			SuccessRate: cfg.Worker.SuccessRate,
			Latency:     cfg.Worker.NotifierLatency,
		}, logger),
		queueClient,
		cfg.Worker.WelcomeTemplate,
		cfg.Worker.MaxRetryCount,
		logger,
	)
	if err != nil {
		logger.Error("failed to create processor", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("starting event consumer",
		slog.Int("concurrency", cfg.Worker.Concurrency),
		slog.Int("max_retry_count", cfg.Worker.MaxRetryCount),
	)

	// Consume drains in-flight events before returning on cancellation
	err = queueClient.Consume(ctx, processor.Process, cfg.Worker.Concurrency)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("worker stopped gracefully")
}
