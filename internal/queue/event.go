package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/Raymond9734/customer-registry/internal/models"
)

// NewCustomerEvent builds a first-attempt event for customer
func NewCustomerEvent(eventType string, customer *models.Customer, now time.Time) *models.CustomerEvent {
	return &models.CustomerEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		CustomerID: customer.ID,
		Email:      customer.Email,
		OccurredAt: now.UTC(),
	}
}

// Retry returns a copy of event for its next delivery attempt
func Retry(event *models.CustomerEvent) *models.CustomerEvent {
	next := *event
	next.Attempt++
	return &next
}
