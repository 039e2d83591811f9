package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrNotFound = errors.New("record not found")
var ErrNotUnique = errors.New("record not unique")

// DomainError is an expected business-rule violation. The code mirrors a HTTP status code.
// The cause is kept for diagnostics only and never sent to a client.
type DomainError struct {
	Code    int
	Message string
	Cause   error
}

// NewError returns a DomainError with the given code and message.
func NewError(code int, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewBusinessError returns a DomainError with the default code 500.
func NewBusinessError(message string) *DomainError {
	return NewError(http.StatusInternalServerError, message)
}

// WrapError returns a DomainError that keeps the given cause for diagnostics.
func WrapError(code int, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

func BadRequest(message string) *DomainError {
	return NewError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *DomainError {
	return NewError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *DomainError {
	return NewError(http.StatusForbidden, message)
}

func NotFound(message string) *DomainError {
	return NewError(http.StatusNotFound, message)
}

func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned if user input failed validation. It is always a bad request.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError from field/message pairs.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Messages returns the message of every invalid field, in order.
func (e *ValidationError) Messages() []string {
	if e == nil {
		return nil
	}
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return messages
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), ", ")
}

// IllegalArgumentError signals a programming error of the caller, like an impossible page number.
type IllegalArgumentError struct {
	Message string
}

// IllegalArgument returns a new IllegalArgumentError with a formatted message.
func IllegalArgument(format string, args ...any) *IllegalArgumentError {
	return &IllegalArgumentError{Message: fmt.Sprintf(format, args...)}
}

func (e *IllegalArgumentError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
