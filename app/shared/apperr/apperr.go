// Package apperr defines the error kinds the judging core surfaces to callers.
//
// Every domain failure wraps exactly one of the sentinel kinds so callers can
// branch with errors.Is. Infrastructure failures are never wrapped in a kind.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced hackathon, criterion, assignment, project or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the acting user lacks the role required for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates the requested state already exists.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates the request was well-formed but semantically invalid.
	ErrValidation = errors.New("validation failed")
)

// Error is a user-presentable failure of a specific kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound-kind error.
func NotFound(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

// Forbidden returns an ErrForbidden-kind error.
func Forbidden(format string, args ...any) error {
	return newf(ErrForbidden, format, args...)
}

// Conflict returns an ErrConflict-kind error.
func Conflict(format string, args ...any) error {
	return newf(ErrConflict, format, args...)
}

// Validation returns an ErrValidation-kind error.
func Validation(format string, args ...any) error {
	return newf(ErrValidation, format, args...)
}

// IsDomain reports whether err carries one of the domain kinds.
func IsDomain(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrValidation)
}
