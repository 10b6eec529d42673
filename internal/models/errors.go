package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common error types
var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("operation conflicts with current state")
	ErrValidationFailed = errors.New("validation failed")
)

// Error codes carried by AppError
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
)

// AppError represents an application-level error with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput creates an input error that is not tied to a field
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrCustomerNotFound creates the not found error for a customer ID
func ErrCustomerNotFound(id int64) error {
	return ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
}

// ErrConflictWithMsg creates a conflict error with custom message
func ErrConflictWithMsg(message string) error {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Err:     ErrConflict,
	}
}

// ErrDuplicateEmail creates the conflict error for an email already in use
func ErrDuplicateEmail(email string) error {
	return ErrConflictWithMsg(fmt.Sprintf("a customer with email %s already exists", email))
}

// ValidationError carries every field-rule violation of a request.
// A field may map to more than one message.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed for %s", strings.Join(fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError wraps a field-to-messages mapping
func NewValidationError(fields map[string][]string) error {
	return &ValidationError{Fields: fields}
}
