// Package common defines shared constants and sentinel errors used across
// client and server layers of folio. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Input errors. Recoverable by the caller correcting the request.
	ErrValidation       = errors.New("validation error")
	ErrDuplicateAccount = errors.New("account already exists")

	// Credential errors. Unknown email and wrong password share one value.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors. Transports report all of them as "not authenticated".
	ErrMissingToken     = errors.New("missing token")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")

	// ErrForbidden means the caller is authenticated but does not own the resource.
	ErrForbidden = errors.New("forbidden")
)

// IsUnauthenticated reports whether err is any of the token/credential
// failures that transports surface as 401.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrInvalidCredentials)
}
