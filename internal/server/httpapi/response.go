package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/folio/internal/common"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendJSON sends a JSON response.
func SendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// SendError sends the error envelope.
func SendError(w http.ResponseWriter, statusCode int, code, message string) {
	SendJSON(w, statusCode, ErrorResponse{Code: code, Message: message})
}

// classify maps a service error onto status and reason code. Token
// failures other than a missing token collapse into InvalidToken.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, common.CodeValidation, err.Error()
	case errors.Is(err, common.ErrDuplicateAccount):
		return http.StatusBadRequest, common.CodeDuplicateAccount, "an account with this email already exists"
	case errors.Is(err, common.ErrMissingToken):
		return http.StatusUnauthorized, common.CodeMissingToken, "authorization token is required"
	case errors.Is(err, common.ErrMalformedToken),
		errors.Is(err, common.ErrInvalidSignature),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, common.CodeInvalidToken, "token is not valid"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, common.CodeInvalidCredentials, "invalid email or password"
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, common.CodeAuthorization, "not the owner of this record"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, common.CodeNotFound, "not found"
	default:
		return http.StatusInternalServerError, common.CodeInternal, "internal error"
	}
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: request body is not valid JSON", common.ErrValidation)
	}
	return nil
}

const maxBodyBytes = 1 << 20
