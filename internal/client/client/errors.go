package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a decoded error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// Unwrap maps the reason code onto a sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case common.CodeValidation:
		return common.ErrValidation
	case common.CodeDuplicateAccount:
		return common.ErrDuplicateAccount
	case common.CodeInvalidCredentials:
		return common.ErrInvalidCredentials
	case common.CodeMissingToken, common.CodeInvalidToken:
		return ErrUnauthorized
	case common.CodeAuthorization:
		return common.ErrForbidden
	case common.CodeNotFound:
		return common.ErrorNotFound
	default:
		return common.ErrorInternal
	}
}
