package services

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by a service unwraps to exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrNoData       = fmt.Errorf("%w: no data", ErrNotFound)
	ErrUpstream     = errors.New("upstream failure")
)

// Error carries a message that is safe to return to API clients. Cause is kept for
// server-side logging only.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func validationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func conflictError(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func unauthorizedError(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func notFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func noDataError(message string) error {
	return &Error{Kind: ErrNoData, Message: message}
}

func upstreamError(message string, cause error) error {
	return &Error{Kind: ErrUpstream, Message: message, Cause: cause}
}

// PublicMessage returns the client-facing message of err, or fallback when err
// does not carry one.
func PublicMessage(err error, fallback string) string {
	var serviceErr *Error
	if errors.As(err, &serviceErr) && serviceErr.Message != "" {
		return serviceErr.Message
	}
	return fallback
}
