// internal/api/middleware.go
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bookshop/internal/apperr"
	"bookshop/internal/token"
)

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestID assigns a request id to every inbound request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger emits one structured log line per completed request.
func Logger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			evt := logger.Info().
				Str("request_id", RequestIDFrom(r.Context())).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", rec.status)
			if p, ok := PrincipalFrom(r.Context()); ok {
				evt = evt.Str("username", p.Username)
			}
			evt.Msg("request completed")
		})
	}
}

// Recover converts panics into 500 responses instead of dropped
// connections.
func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("request_id", RequestIDFrom(r.Context())).
						Interface("panic", rec).
						Msg("handler panicked")
					Error(w, apperr.New(apperr.CodeInternal, "internal server error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate resolves a Bearer access token into a Principal on the
// request context. Requests without a token pass through anonymously;
// rejection is left to RequireUser and RequireStaff.
func Authenticate(maker *token.Maker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			fields := strings.Fields(header)
			if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
				Error(w, apperr.New(apperr.CodeUnauthenticated, "invalid authorization header format"))
				return
			}

			payload, err := maker.VerifyToken(fields[1])
			if err != nil {
				Error(w, err)
				return
			}
			if payload.Type != token.TypeAccess {
				Error(w, apperr.New(apperr.CodeUnauthenticated, "access token required"))
				return
			}

			p := &Principal{UserID: payload.UserID, Username: payload.Username, IsStaff: payload.IsStaff}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireUser rejects requests without an authenticated principal.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			Error(w, apperr.New(apperr.CodeUnauthenticated, "authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff rejects requests whose principal lacks the staff role.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			Error(w, apperr.New(apperr.CodeUnauthenticated, "authentication required"))
			return
		}
		if !p.IsStaff {
			Error(w, apperr.New(apperr.CodeForbidden, "staff role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
