// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// PublicError pairs a sentinel with a message that is safe to show to end users.
type PublicError struct {
	Kind    error
	Message string
}

// Public wraps kind with a user-facing message.
func Public(kind error, message string) error {
	return &PublicError{Kind: kind, Message: message}
}

func (e *PublicError) Error() string { return e.Message }

func (e *PublicError) Unwrap() error { return e.Kind }

// RespondError maps domain errors to HTTP responses using RFC7807. Public
// messages are copied into the message field; other errors only expose the
// sentinel text.
func RespondError(w http.ResponseWriter, err error) {
	var public *PublicError
	message := ""
	if errors.As(err, &public) {
		message = public.Message
	}
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", detailOr(message, ErrNotFound))
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", detailOr(message, ErrDuplicate))
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", detailOr(message, ErrValidation))
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", detailOr(message, ErrForbidden))
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", detailOr(message, ErrUnauthorized))
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func detailOr(message string, kind error) string {
	if message != "" {
		return message
	}
	return kind.Error()
}
