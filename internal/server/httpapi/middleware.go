package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// RequireAuth verifies the bearer token and attaches the resolved account
// to the request context. Any verification failure is a 401; the
// protected handler never runs.
func RequireAuth(accounts AccountService, logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := common.BearerToken(r.Header.Get(common.AuthorizationHeaderName))

			account, err := accounts.Verify(r.Context(), raw)
			if err != nil {
				status, code, msg := classify(err)
				if status == http.StatusUnauthorized && code == common.CodeInvalidCredentials {
					// Subject of a valid token no longer exists.
					code, msg = common.CodeInvalidToken, "token is not valid"
				}
				if status >= http.StatusInternalServerError {
					logger.Error(r.Context(), "token verification failed", "error", err)
				} else {
					logger.Debug(r.Context(), "request rejected", "code", code)
				}
				SendError(w, status, code, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), account)))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs method, path, status and duration of each request.
func RequestLogger(logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			rec.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(rec, r)

			logger.Info(r.Context(), "http request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// Recoverer turns a handler panic into a 500 envelope.
func Recoverer(logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error(r.Context(), "handler panic", "panic", p)
					SendError(w, http.StatusInternalServerError, common.CodeInternal, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
