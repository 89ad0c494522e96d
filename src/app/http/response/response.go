// Package response defines consistent HTTP response structures.
// All API responses should use these types for consistency.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roombooking/src/core/domain"
)

// Success represents a successful response with data.
type Success struct {
	Data any `json:"data"`
}

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Field is the first field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// Fields lists every rejected field
	Fields []domain.FieldError `json:"fields,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success{Data: data})
}

// Created sends a 201 response with the created resource.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Success{Data: data})
}

// Fail sends an error response with the given status and code.
func Fail(c *gin.Context, status int, code, message, requestID string) {
	c.JSON(status, Error{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	})
}

// ValidationError sends a 400 response listing the rejected fields.
func ValidationError(c *gin.Context, message string, fields []domain.FieldError, requestID string) {
	detail := ErrorDetail{
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Fields:    fields,
		RequestID: requestID,
	}
	if len(fields) > 0 {
		detail.Field = fields[0].Field
	}
	c.JSON(http.StatusBadRequest, Error{Error: detail})
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message, requestID string) {
	Fail(c, http.StatusNotFound, "NOT_FOUND", message, requestID)
}

// InternalError sends an opaque 500 response.
func InternalError(c *gin.Context, requestID string) {
	Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", requestID)
}

// FromDomainError converts a domain error to an appropriate HTTP response.
// Errors that are not domain errors are reported as opaque 500s.
// err is also recorded on the gin context for the access log.
func FromDomainError(c *gin.Context, err error, requestID string) {
	_ = c.Error(err)

	message := err.Error()
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		message = domainErr.Message
	}

	switch {
	case domain.IsValidationError(err):
		var fields []domain.FieldError
		if domainErr != nil {
			fields = domainErr.Fields
			if len(fields) == 0 && domainErr.Field != "" {
				fields = []domain.FieldError{{Field: domainErr.Field, Message: domainErr.Message}}
			}
		}
		ValidationError(c, message, fields, requestID)
	case domain.IsNotFound(err):
		NotFound(c, err.Error(), requestID)
	case domain.IsConflict(err):
		Fail(c, http.StatusConflict, "CONFLICT", message, requestID)
	case domain.IsConnectionError(err):
		Fail(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", message, requestID)
	default:
		InternalError(c, requestID)
	}
}
