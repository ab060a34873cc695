// Package common defines shared constants and sentinel errors used across
// the filmlog server and client. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Token errors. ErrInvalidSignature, ErrMalformedToken and ErrTokenExpired
	// all wrap ErrInvalidToken.
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	ErrMalformedToken   = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenExpired     = fmt.Errorf("%w: expired", ErrInvalidToken)

	// Session lifecycle errors.
	ErrSessionRevoked = errors.New("session revoked")
)

// ValidationError rejects a single input field. It matches ErrorValidation
// under errors.Is and its message is safe to show to API callers.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrorValidation }

// Invalid builds a ValidationError from a format string.
func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
