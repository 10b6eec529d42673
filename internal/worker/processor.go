package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/customer-registry/internal/models"
	"github.com/Raymond9734/customer-registry/internal/queue"
	"github.com/Raymond9734/customer-registry/internal/repository"
	"github.com/Raymond9734/customer-registry/internal/service"
)

// WelcomeSubject is the subject line of every welcome notice
const WelcomeSubject = "Welcome aboard"

// WelcomeProcessor sends a welcome notice for created and registered customers
type WelcomeProcessor struct {
	customerRepo repository.CustomerRepository
	templateSvc  service.TemplateService
	notifier     Notifier
	requeue      queue.Publisher
	template     string
	maxRetries   int
	logger       *slog.Logger
}

// NewWelcomeProcessor creates a new welcome processor.
// Failed deliveries are published back to requeue until maxRetries attempts were made.
func NewWelcomeProcessor(
	customerRepo repository.CustomerRepository,
	templateSvc service.TemplateService,
	notifier Notifier,
	requeue queue.Publisher,
	template string,
	maxRetries int,
	logger *slog.Logger,
) (*WelcomeProcessor, error) {
	if err := templateSvc.ValidateTemplate(template); err != nil {
		return nil, fmt.Errorf("invalid welcome template: %w", err)
	}

	return &WelcomeProcessor{
		customerRepo: customerRepo,
		templateSvc:  templateSvc,
		notifier:     notifier,
		requeue:      requeue,
		template:     template,
		maxRetries:   maxRetries,
		logger:       logger,
	}, nil
}

// Process handles a single customer event
func (p *WelcomeProcessor) Process(ctx context.Context, event *models.CustomerEvent) error {
	if !event.WantsWelcome() {
		p.logger.Debug("ignoring event",
			slog.String("event_id", event.ID),
			slog.String("type", event.Type),
		)
		return nil
	}

	customer, err := p.customerRepo.GetByID(ctx, event.CustomerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			p.logger.Info("customer no longer exists, skipping welcome",
				slog.String("event_id", event.ID),
				slog.Int64("customer_id", event.CustomerID),
			)
			return nil
		}
		return fmt.Errorf("failed to fetch customer: %w", err)
	}

	body, err := p.templateSvc.Render(p.template, customer)
	if err != nil {
		return fmt.Errorf("failed to render welcome notice: %w", err)
	}

	if err := p.notifier.Notify(ctx, customer.Email, WelcomeSubject, body); err != nil {
		p.logger.Warn("welcome notice failed",
			slog.String("event_id", event.ID),
			slog.Int64("customer_id", customer.ID),
			slog.Int("attempt", event.Attempt),
			slog.String("error", err.Error()),
		)
		return p.handleFailure(ctx, event, err)
	}

	p.logger.Info("welcome notice sent",
		slog.String("event_id", event.ID),
		slog.Int64("customer_id", customer.ID),
		slog.String("email", customer.Email),
	)

	return nil
}

// handleFailure re-queues the event or gives up once maxRetries attempts were made
func (p *WelcomeProcessor) handleFailure(ctx context.Context, event *models.CustomerEvent, sendErr error) error {
	if event.Attempt+1 >= p.maxRetries {
		p.logger.Error("welcome notice permanently failed after max retries",
			slog.String("event_id", event.ID),
			slog.Int64("customer_id", event.CustomerID),
			slog.Int("attempts", event.Attempt+1),
			slog.Int("max_retries", p.maxRetries),
			slog.String("error", sendErr.Error()),
		)
		return nil
	}

	next := queue.Retry(event)
	if err := p.requeue.Publish(ctx, next); err != nil {
		return fmt.Errorf("failed to requeue event %s: %w", event.ID, err)
	}

	p.logger.Info("welcome notice will be retried",
		slog.String("event_id", event.ID),
		slog.Int("attempt", next.Attempt),
		slog.Int("max_retries", p.maxRetries),
	)

	return nil
}
