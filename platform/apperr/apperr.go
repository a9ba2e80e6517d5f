// Package apperr defines the typed domain errors returned by services and
// repositories. The HTTP layer maps each error kind to a status code at the
// boundary; nothing below the handlers ever touches HTTP semantics.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind categorizes a domain error.
type Kind int

const (
	// KindUnknown is the zero value for untyped errors.
	KindUnknown Kind = iota
	// KindNotFound indicates a missing resource (contract, quote, item...).
	KindNotFound
	// KindValidation indicates malformed or out-of-range input.
	KindValidation
	// KindConflict indicates a uniqueness or state conflict.
	KindConflict
	// KindUnauthorized indicates missing or failed authentication.
	KindUnauthorized
	// KindUnprocessable indicates input that is well-formed but violates a
	// business rule (missing required field for an item kind, unresolvable
	// price, inconsistent quote kind).
	KindUnprocessable
	// KindInternal indicates an unexpected failure.
	KindInternal
)

// Error is a domain error carrying a Kind for transport mapping.
type Error struct {
	Kind    Kind
	Message string
	Op      string // operation that failed, optional
	Err     error  // wrapped cause, optional
	Details any    // extra payload surfaced in the error envelope, optional
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code the error kind maps to.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a domain error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a domain error around an existing cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithDetails attaches a details payload and returns the error.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// NotFound creates a not-found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Conflict creates a conflict error.
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// Unauthorized creates an authentication error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// Unprocessable creates a business-rule violation error.
func Unprocessable(message string) *Error {
	return New(KindUnprocessable, message)
}

// Internal creates an internal error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// GetKind extracts the Kind from an error, KindUnknown for untyped errors.
func GetKind(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
