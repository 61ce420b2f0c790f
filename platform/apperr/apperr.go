// Package apperr provides typed domain errors. Services return these and the
// HTTP layer maps them to status codes in one place (httpkit.HandleError).
package apperr

import (
	"fmt"
	"net/http"
)

// Kind categorizes a domain error for HTTP mapping.
type Kind int

const (
	// KindUnknown is the default kind when none is specified.
	KindUnknown Kind = iota
	// KindNotFound indicates a resource was not found.
	KindNotFound
	// KindValidation indicates a request payload failed field-level validation.
	KindValidation
	// KindConflict indicates a conflict with current state, e.g. an empty
	// distribution stock.
	KindConflict
	// KindForbidden indicates the actor's role or hierarchy position does not
	// allow the action.
	KindForbidden
	// KindUnauthorized indicates missing or failed authentication.
	KindUnauthorized
	// KindBadRequest indicates a malformed request.
	KindBadRequest
	// KindInternal indicates an unexpected internal failure.
	KindInternal
)

// Error is a domain error with a typed Kind.
type Error struct {
	Kind    Kind
	Message string
	Op      string      // operation that failed (optional)
	Err     error       // underlying error (optional)
	Details interface{} // field-level issues or extra context (optional)
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for this error kind. Validation failures
// map to 422 so callers can distinguish malformed JSON (400) from payloads
// that parsed but violate field constraints.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a domain error wrapping an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp sets the operation name and returns the error.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithDetails attaches response details and returns the error.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation creates a validation error (422).
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Conflict creates a conflict error.
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// Forbidden creates a forbidden error.
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// BadRequest creates a bad request error.
func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// Internal creates an internal server error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// GetKind extracts the kind from an error, KindUnknown when it is not an *Error.
func GetKind(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
