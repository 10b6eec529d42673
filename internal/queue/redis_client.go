package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Raymond9734/customer-registry/internal/models"
)

const maxConsumerConcurrency = 16

// redisClient implements Client using Redis
type redisClient struct {
	client    *redis.Client
	queueName string
	logger    *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL       string
	QueueName string
}

// NewRedisClient creates a new Redis queue client
func NewRedisClient(cfg RedisConfig, logger *slog.Logger) (Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.String("queue", cfg.QueueName),
	)

	return &redisClient{
		client:    client,
		queueName: cfg.QueueName,
		logger:    logger,
	}, nil
}

// Publish pushes a customer event onto the queue
func (c *redisClient) Publish(ctx context.Context, event *models.CustomerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// LPUSH + BRPOP gives FIFO delivery
	if err := c.client.LPush(ctx, c.queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to push event to queue: %w", err)
	}

	c.logger.Debug("event published to queue",
		slog.String("event_id", event.ID),
		slog.String("type", event.Type),
		slog.Int64("customer_id", event.CustomerID),
	)

	return nil
}

// Consume receives events from the queue and processes them with the handler.
// concurrency is clamped to [1, maxConsumerConcurrency].
func (c *redisClient) Consume(ctx context.Context, handler EventHandler, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > maxConsumerConcurrency {
		concurrency = maxConsumerConcurrency
	}

	c.logger.Info("starting event consumer",
		slog.String("queue", c.queueName),
		slog.Int("concurrency", concurrency),
	)

	semaphore := make(chan struct{}, concurrency)

	for {
		select {
		case <-ctx.Done():
			c.drain(semaphore)
			return ctx.Err()

		default:
			result, err := c.client.BRPop(ctx, 1*time.Second, c.queueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					c.drain(semaphore)
					return err
				}
				c.logger.Error("failed to pop from queue", slog.String("error", err.Error()))
				time.Sleep(1 * time.Second)
				continue
			}

			// BRPOP returns [queueName, value]
			if len(result) < 2 {
				c.logger.Error("unexpected BRPOP result format")
				continue
			}

			var event models.CustomerEvent
			if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
				c.logger.Error("failed to unmarshal event",
					slog.String("error", err.Error()),
					slog.String("data", result[1]),
				)
				continue
			}

			c.logger.Debug("event received from queue",
				slog.String("event_id", event.ID),
				slog.String("type", event.Type),
			)

			// Acquire semaphore slot (blocks if all slots are busy)
			semaphore <- struct{}{}

			go func(event models.CustomerEvent) {
				defer func() { <-semaphore }()

				// The event is already popped; re-queueing is the handler's job
				if err := handler(ctx, &event); err != nil {
					c.logger.Error("handler failed to process event",
						slog.String("event_id", event.ID),
						slog.Int64("customer_id", event.CustomerID),
						slog.String("error", err.Error()),
					)
				}
			}(event)
		}
	}
}

// drain blocks until every in-flight handler has released its slot
func (c *redisClient) drain(semaphore chan struct{}) {
	c.logger.Info("consumer stopped, waiting for in-flight events")
	for i := 0; i < cap(semaphore); i++ {
		semaphore <- struct{}{}
	}
	c.logger.Info("all in-flight events completed")
}

// Close closes the Redis connection
func (c *redisClient) Close() error {
	c.logger.Info("closing Redis connection")
	return c.client.Close()
}

// Health checks if Redis is healthy
func (c *redisClient) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Length returns the number of events waiting in the queue
func (c *redisClient) Length(ctx context.Context) (int64, error) {
	length, err := c.client.LLen(ctx, c.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}
	return length, nil
}
