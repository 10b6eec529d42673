package models

import "time"

// Customer event types
const (
	EventCustomerCreated    = "customer.created"
	EventCustomerUpdated    = "customer.updated"
	EventCustomerDeleted    = "customer.deleted"
	EventCustomerRegistered = "customer.registered"
)

// CustomerEvent is published to the queue after a successful mutation
type CustomerEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	CustomerID int64     `json:"customer_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
	Attempt    int       `json:"attempt"`
}

// WantsWelcome reports whether the event should trigger a welcome notice
func (e *CustomerEvent) WantsWelcome() bool {
	return e.Type == EventCustomerCreated || e.Type == EventCustomerRegistered
}
