package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain error types for consistent error handling across the application.
// Each request's failure is classified into one of these and mapped once at
// the HTTP boundary.

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict with the current state,
	// such as an overlapping booking or a taken username.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable is returned when the store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// FieldError describes one rejected field of a payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError wraps a base error with additional context.
type DomainError struct {
	// Base is the underlying error type (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string

	// Fields lists every rejected field when validation reports more than one.
	Fields []FieldError

	// Cause is the infrastructure error behind the failure, if any.
	Cause error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(e.Base.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (field: %s)", e.Field)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the base error and the cause for errors.Is/As support.
func (e *DomainError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Base}
	}
	return []error{e.Base, e.Cause}
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: resource,
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: message,
		Field:   field,
		Fields:  []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a validation error listing several fields.
// The first field is also reported as Field.
func NewValidationErrors(fields []FieldError) *DomainError {
	if len(fields) == 0 {
		return &DomainError{Base: ErrInvalidInput}
	}
	msg := fields[0].Message
	if len(fields) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(fields)-1)
	}
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: msg,
		Field:   fields[0].Field,
		Fields:  fields,
	}
}

// NewConflictError creates a conflict error with context.
func NewConflictError(message string) *DomainError {
	return &DomainError{
		Base:    ErrConflict,
		Message: message,
	}
}

// NewBookingConflictError reports the booking a candidate collides with.
func NewBookingConflictError(existing *Booking) *DomainError {
	return NewConflictError(fmt.Sprintf("%s is already booked on %s from %s to %s",
		existing.Room, existing.Date, existing.ClockStart, existing.ClockEnd))
}

// NewConnectionError wraps a failure to obtain a live store connection.
func NewConnectionError(cause error) *DomainError {
	return &DomainError{
		Base:    ErrUnavailable,
		Message: "could not connect to database",
		Cause:   cause,
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsConnectionError checks if an error is a store connection failure.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
