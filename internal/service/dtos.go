package service

import (
	"strings"

	"github.com/Raymond9734/customer-registry/internal/models"
)

// CustomerRequest is the full customer payload accepted by create and update
type CustomerRequest struct {
	FirstName        string              `json:"first_name"`
	LastName         string              `json:"last_name"`
	Email            string              `json:"email"`
	Age              int                 `json:"age"`
	Phone            string              `json:"phone,omitempty"`
	Website          string              `json:"website,omitempty"`
	DateOfBirth      *models.Date        `json:"date_of_birth,omitempty"`
	Salary           *float64            `json:"salary,omitempty"`
	Password         string              `json:"password"`
	ConfirmPassword  string              `json:"confirm_password"`
	CreditCardNumber string              `json:"credit_card_number,omitempty"`
	CustomerType     models.CustomerType `json:"customer_type,omitempty"`
	TermsAccepted    bool                `json:"terms_accepted"`
}

// normalize trims surrounding whitespace and applies the default customer type
func (r *CustomerRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Website = strings.TrimSpace(r.Website)
	r.CreditCardNumber = strings.TrimSpace(r.CreditCardNumber)
	if r.CustomerType == "" {
		r.CustomerType = models.CustomerTypeRegular
	}
}

// toCustomer builds the record to store; the password hash is set by the caller
func (r *CustomerRequest) toCustomer() *models.Customer {
	return &models.Customer{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Age:              r.Age,
		Phone:            r.Phone,
		Website:          r.Website,
		DateOfBirth:      r.DateOfBirth,
		Salary:           r.Salary,
		CreditCardNumber: r.CreditCardNumber,
		CustomerType:     r.CustomerType,
		TermsAccepted:    r.TermsAccepted,
	}
}

// RegistrationRequest is the reduced payload of the self-registration path
type RegistrationRequest struct {
	FirstName       string       `json:"first_name"`
	LastName        string       `json:"last_name"`
	Email           string       `json:"email"`
	DateOfBirth     *models.Date `json:"date_of_birth"`
	Password        string       `json:"password"`
	ConfirmPassword string       `json:"confirm_password"`
	TermsAccepted   bool         `json:"terms_accepted"`
}

func (r *RegistrationRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
}
