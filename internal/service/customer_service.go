package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Raymond9734/customer-registry/internal/models"
	"github.com/Raymond9734/customer-registry/internal/queue"
	"github.com/Raymond9734/customer-registry/internal/repository"
	"github.com/Raymond9734/customer-registry/internal/validation"
)

// CustomerService handles customer business logic
type CustomerService interface {
	List(ctx context.Context) ([]*models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, req *CustomerRequest) (*models.Customer, error)
	Update(ctx context.Context, id int64, req *CustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
	Register(ctx context.Context, req *RegistrationRequest) (*models.Customer, error)
}

// CustomerServiceConfig tunes validation and hashing
type CustomerServiceConfig struct {
	// DisallowedEmailDomains are rejected by Register, compared lowercased
	DisallowedEmailDomains []string

	// PasswordHashCost is the bcrypt cost; zero means bcrypt.DefaultCost
	PasswordHashCost int

	// Now returns the current time; nil means time.Now
	Now func() time.Time
}

type customerService struct {
	customerRepo      repository.CustomerRepository
	publisher         queue.Publisher
	disallowedDomains map[string]struct{}
	hashCost          int
	now               func() time.Time
	logger            *slog.Logger
}

// NewCustomerService creates a new customer service.
// publisher may be nil, in which case no events are emitted.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	publisher queue.Publisher,
	cfg CustomerServiceConfig,
	logger *slog.Logger,
) CustomerService {
	domains := make(map[string]struct{}, len(cfg.DisallowedEmailDomains))
	for _, d := range cfg.DisallowedEmailDomains {
		domains[validation.EmailDomain("@"+d)] = struct{}{}
	}

	hashCost := cfg.PasswordHashCost
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &customerService{
		customerRepo:      customerRepo,
		publisher:         publisher,
		disallowedDomains: domains,
		hashCost:          hashCost,
		now:               now,
		logger:            logger,
	}
}

// List retrieves every customer in insertion order
func (s *customerService) List(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, nil
}

// GetByID retrieves a customer by ID
func (s *customerService) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// Create validates and stores a new customer
func (s *customerService) Create(ctx context.Context, req *CustomerRequest) (*models.Customer, error) {
	req.normalize()

	if err := validation.Validate(req, customerFieldRules(s.today()), customerCrossFieldRules()); err != nil {
		return nil, err
	}

	customer := req.toCustomer()
	if err := s.store(ctx, customer, req.Password); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		slog.Int64("customer_id", customer.ID),
		slog.String("customer_type", string(customer.CustomerType)),
	)
	s.publish(ctx, models.EventCustomerCreated, customer)

	return customer, nil
}

// Update re-validates the full payload, then overwrites only the
// customer's first name, last name and email
func (s *customerService) Update(ctx context.Context, id int64, req *CustomerRequest) (*models.Customer, error) {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	req.normalize()

	if err := validation.Validate(req, customerFieldRules(s.today()), customerCrossFieldRules()); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.Update(ctx, id, models.CustomerChanges{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return nil, s.wrapWriteError("update", id, err)
	}

	s.logger.Info("customer updated",
		slog.Int64("customer_id", customer.ID),
	)
	s.publish(ctx, models.EventCustomerUpdated, customer)

	return customer, nil
}

// Delete removes a customer
func (s *customerService) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return s.wrapWriteError("delete", id, err)
	}

	s.logger.Info("customer deleted",
		slog.Int64("customer_id", id),
	)
	s.publish(ctx, models.EventCustomerDeleted, &models.Customer{ID: id})

	return nil
}

// Register creates a Regular customer from the reduced registration payload.
// The age is derived from the date of birth.
func (s *customerService) Register(ctx context.Context, req *RegistrationRequest) (*models.Customer, error) {
	req.normalize()
	today := s.today()

	if err := validation.Validate(req,
		registrationFieldRules(today, s.disallowedDomains),
		registrationCrossFieldRules(),
	); err != nil {
		return nil, err
	}

	dob := *req.DateOfBirth
	customer := &models.Customer{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Age:           validation.AgeOn(dob, today),
		DateOfBirth:   &dob,
		CustomerType:  models.CustomerTypeRegular,
		TermsAccepted: req.TermsAccepted,
	}

	if err := s.store(ctx, customer, req.Password); err != nil {
		return nil, err
	}

	s.logger.Info("customer registered",
		slog.Int64("customer_id", customer.ID),
		slog.Int("age", customer.Age),
	)
	s.publish(ctx, models.EventCustomerRegistered, customer)

	return customer, nil
}

// store hashes the password and inserts customer
func (s *customerService) store(ctx context.Context, customer *models.Customer, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	customer.PasswordHash = string(hash)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return s.wrapWriteError("create", 0, err)
	}

	return nil
}

// wrapWriteError passes domain errors through untouched and wraps the rest
func (s *customerService) wrapWriteError(op string, id int64, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}

	s.logger.Error("failed to "+op+" customer",
		slog.Int64("customer_id", id),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("failed to %s customer: %w", op, err)
}

// publish emits a customer event. Failures are logged and never undo the write.
func (s *customerService) publish(ctx context.Context, eventType string, customer *models.Customer) {
	if s.publisher == nil {
		return
	}

	event := queue.NewCustomerEvent(eventType, customer, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish customer event",
			slog.String("type", eventType),
			slog.Int64("customer_id", customer.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *customerService) today() models.Date {
	return models.DateOf(s.now())
}
