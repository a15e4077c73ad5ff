package errors

import (
	"errors"
	"fmt"
)

var (
	// Transport errors
	ErrGatewayUnreachable = errors.New("payment gateway unreachable")

	// Recorder errors
	ErrDuplicateTransaction = errors.New("duplicate transaction reference")
	ErrTransactionNotFound  = errors.New("transaction not found")

	// Credential errors
	ErrMissingCredentials = errors.New("incomplete merchant credentials")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports a caller contract violation (bad input shape).
// It is safe to show to the end user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// GatewayError is a hard failure reported by the processor itself: an
// ERRORSTRING in the response, or a response that could not be interpreted
// at all. The message is operator-facing; callers see a generic failure.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return "gateway error"
	}
	return "gateway error: " + e.Message
}

// NewGatewayError creates a new gateway error
func NewGatewayError(message string) *GatewayError {
	return &GatewayError{Message: message}
}

// DeclinedError is an ordinary decline (insufficient funds and the like).
// The message is processor-supplied and may be shown to the customer as-is.
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	return "payment declined: " + e.Message
}

// NewDeclinedError creates a new declined error
func NewDeclinedError(message string) *DeclinedError {
	return &DeclinedError{Message: message}
}
