// Package apperror defines the user-facing error categories returned by services.
// Handlers turn them into flash messages; anything else is treated as an
// infrastructure failure.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Conflict
	NotFound
	Forbidden
	Auth
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case Auth:
		return "auth"
	default:
		return "internal"
	}
}

// Error carries a message that is safe to show to the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusUnprocessableEntity
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case Auth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string) *Error {
	return New(Validation, message, nil)
}

func NewConflict(message string, err error) *Error {
	return New(Conflict, message, err)
}

func NewNotFound(message string, err error) *Error {
	return New(NotFound, message, err)
}

func NewForbidden(message string) *Error {
	return New(Forbidden, message, nil)
}

func NewAuth(message string, err error) *Error {
	return New(Auth, message, err)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return Internal
}

// Message returns the user-facing message, or fallback for infrastructure errors.
func Message(err error, fallback string) string {
	if appErr, ok := As(err); ok && appErr.Kind != Internal {
		return appErr.Message
	}
	return fallback
}

func IsValidation(err error) bool { return KindOf(err) == Validation }
func IsConflict(err error) bool   { return KindOf(err) == Conflict }
func IsNotFound(err error) bool   { return KindOf(err) == NotFound }
func IsForbidden(err error) bool  { return KindOf(err) == Forbidden }
func IsAuth(err error) bool       { return KindOf(err) == Auth }
