package domain

import (
	"errors"
	"fmt"
)

// DomainError is a local failure raised before a request reaches the API.
type DomainError struct {
	Code    string // e.g. "SPOT-ARG-4001"
	Message string
	Details string
	Cause   error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

var (
	// ErrValidation indicates a form field failed its constraint.
	ErrValidation = NewDomainError("SPOT-ARG-4001", "invalid input")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("SPOT-ARG-4002", "missing required argument")

	// ErrNotAuthenticated indicates the command needs a signed-in session.
	ErrNotAuthenticated = NewDomainError("SPOT-AUTH-4010", "not signed in")
)
