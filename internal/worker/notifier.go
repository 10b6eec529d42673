package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Notifier delivers a notice to a customer's email address
type Notifier interface {
	Notify(ctx context.Context, email, subject, body string) error
}

// MockNotifierConfig tunes the simulated mail relay
type MockNotifierConfig struct {
	// SuccessRate is the probability in [0, 1] that a delivery is accepted
	SuccessRate float64

	// Latency is how long each delivery takes
	Latency time.Duration

	// Seed fixes the bounce sequence; zero seeds from the clock
	Seed int64
}

// mockNotifier logs accepted notices instead of sending mail and bounces
// a share of them according to SuccessRate
type mockNotifier struct {
	cfg    MockNotifierConfig
	mu     sync.Mutex
	rng    *rand.Rand
	logger *slog.Logger
}

// NewMockNotifier creates a simulated notifier
func NewMockNotifier(cfg MockNotifierConfig, logger *slog.Logger) Notifier {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &mockNotifier{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// Notify waits for the configured latency, then accepts or bounces the notice
func (n *mockNotifier) Notify(ctx context.Context, email, subject, body string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("notice has no recipient")
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("notice %q to %s has an empty body", subject, email)
	}

	if n.cfg.Latency > 0 {
		timer := time.NewTimer(n.cfg.Latency)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	if n.bounced() {
		return fmt.Errorf("notice %q to %s bounced by mock relay", subject, email)
	}

	n.logger.Info("notice delivered",
		slog.String("email", email),
		slog.String("subject", subject),
		slog.Int("body_length", len(body)),
	)
	return nil
}

// bounced draws from the shared source, which is not safe for concurrent use
func (n *mockNotifier) bounced() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rng.Float64() >= n.cfg.SuccessRate
}
