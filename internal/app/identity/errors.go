package identity

import (
	"errors"
	"fmt"

	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/auth"
)

// ErrorKind is the closed set of failures the identity boundary reports
type ErrorKind string

const (
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindEmailInUse         ErrorKind = "email_in_use"
	KindInvalidEmail       ErrorKind = "invalid_email"
	KindInvalidSession     ErrorKind = "invalid_session"
	KindUnavailable        ErrorKind = "unavailable"
)

// Error is returned by every Provider method that fails
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf classifies err. Errors that did not come from a Provider are
// recognized by their sentinel where possible, anything else is KindUnavailable.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var idErr *Error
	if errors.As(err, &idErr) {
		return idErr.Kind
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrUserNotFound):
		return KindInvalidCredentials
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return KindEmailInUse
	case errors.Is(err, apperrors.ErrInvalidEmail):
		return KindInvalidEmail
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrInvalidFormat):
		return KindInvalidSession
	}
	return KindUnavailable
}
