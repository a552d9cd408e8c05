package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so transport layers can map it to a
// status code without inspecting message text.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindConflict        ErrorKind = "conflict"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindForbidden       ErrorKind = "forbidden"
	KindUnavailable     ErrorKind = "unavailable"
)

// Error is a typed domain error carrying a kind and a caller-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewNotFoundError reports that an entity with the given identifier does not exist.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewValidationError reports malformed or semantically invalid input.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// NewConflictError reports a state conflict, such as a booking race lost at
// commit time or a mutation attempted against a cancelled booking.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInvalidStateError reports an illegal lifecycle transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewUnauthorizedError reports missing or invalid credentials.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewForbiddenError reports an authenticated caller lacking permission.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewUnavailableError wraps a transient store or timeout failure that the
// caller may safely retry.
func NewUnavailableError(message string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, cause: cause}
}

// KindOf returns the kind of err if it is (or wraps) a domain Error, and ""
// otherwise.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is a conflict domain error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsValidation reports whether err is an invalid-argument domain error.
func IsValidation(err error) bool { return KindOf(err) == KindInvalidArgument }

// IsUnavailable reports whether err is a retryable transient failure.
func IsUnavailable(err error) bool { return KindOf(err) == KindUnavailable }
