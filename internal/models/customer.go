package models

import (
	"encoding/json"
	"strings"
	"time"
)

// CustomerType classifies a customer account
type CustomerType string

// Customer type constants
const (
	CustomerTypeRegular   CustomerType = "Regular"
	CustomerTypePremium   CustomerType = "Premium"
	CustomerTypeVIP       CustomerType = "VIP"
	CustomerTypeCorporate CustomerType = "Corporate"
)

// CustomerTypes lists every accepted customer type in display order
var CustomerTypes = []CustomerType{
	CustomerTypeRegular,
	CustomerTypePremium,
	CustomerTypeVIP,
	CustomerTypeCorporate,
}

// IsValid checks if the customer type is one of the known types
func (t CustomerType) IsValid() bool {
	switch t {
	case CustomerTypeRegular, CustomerTypePremium, CustomerTypeVIP, CustomerTypeCorporate:
		return true
	default:
		return false
	}
}

// Customer represents a registered person.
// The password is never stored in clear; only its bcrypt hash is kept.
type Customer struct {
	ID               int64        `json:"id"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	Email            string       `json:"email"`
	Age              int          `json:"age"`
	Phone            string       `json:"phone,omitempty"`
	Website          string       `json:"website,omitempty"`
	DateOfBirth      *Date        `json:"date_of_birth,omitempty"`
	Salary           *float64     `json:"salary,omitempty"`
	PasswordHash     string       `json:"-"`
	CreditCardNumber string       `json:"-"`
	CustomerType     CustomerType `json:"customer_type"`
	TermsAccepted    bool         `json:"terms_accepted"`
	CreatedAt        time.Time    `json:"created_at"`
}

// MarshalJSON emits the customer with the card number masked
func (c Customer) MarshalJSON() ([]byte, error) {
	type alias Customer
	return json.Marshal(struct {
		alias
		CreditCardNumber string `json:"credit_card_number,omitempty"`
	}{
		alias:            alias(c),
		CreditCardNumber: MaskCardNumber(c.CreditCardNumber),
	})
}

// Clone returns a deep copy so stored records cannot be mutated by callers
func (c *Customer) Clone() *Customer {
	clone := *c
	if c.DateOfBirth != nil {
		dob := *c.DateOfBirth
		clone.DateOfBirth = &dob
	}
	if c.Salary != nil {
		salary := *c.Salary
		clone.Salary = &salary
	}
	return &clone
}

// NormalizedEmail returns the key used for case-insensitive email uniqueness
func NormalizedEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaskCardNumber keeps only the last four digits of a card number
func MaskCardNumber(number string) string {
	digits := make([]byte, 0, len(number))
	for i := 0; i < len(number); i++ {
		if number[i] >= '0' && number[i] <= '9' {
			digits = append(digits, number[i])
		}
	}
	if len(digits) == 0 {
		return ""
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return strings.Repeat("*", len(digits)-4) + string(digits[len(digits)-4:])
}

// CustomerChanges holds the fields an update overwrites on a stored customer
type CustomerChanges struct {
	FirstName string
	LastName  string
	Email     string
}
