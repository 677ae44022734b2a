package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for expected, user-recoverable state conflicts.
const (
	CodeAlreadyRegistered = "ALREADY_REGISTERED"
	CodeAlreadyClockedIn  = "ALREADY_CLOCKED_IN"
	CodeNotClockedIn      = "NOT_CLOCKED_IN"
	CodeNotRegistered     = "NOT_REGISTERED"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

// NewStateConflict flags an expected shift-state conflict such as a double
// clock-in. These are user conditions, never system failures.
func NewStateConflict(code, message string, details map[string]any) error {
	return NewDomainError(code, message, http.StatusConflict, details)
}

func NewAlreadyRegistered(identity string) error {
	return NewStateConflict(CodeAlreadyRegistered, "staff member already registered", map[string]any{"identity": identity})
}

func NewAlreadyClockedIn(identity string) error {
	return NewStateConflict(CodeAlreadyClockedIn, "shift already open", map[string]any{"identity": identity})
}

func NewNotClockedIn(identity string) error {
	return NewStateConflict(CodeNotClockedIn, "no open shift", map[string]any{"identity": identity})
}

func NewNotRegistered(identity string) error {
	return NewStateConflict(CodeNotRegistered, "staff member not registered", map[string]any{"identity": identity})
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
