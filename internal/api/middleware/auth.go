package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/studiofx/platform/internal/api/response"
	"github.com/studiofx/platform/internal/core"
	"github.com/studiofx/platform/internal/model"
)

// KeyValidator is the slice of core.APIKeyService the filter needs.
type KeyValidator interface {
	IsAPIKey(token string) bool
	Validate(ctx context.Context, token string) (*model.User, error)
}

// SessionValidator is the slice of core.AuthService the session filter needs.
type SessionValidator interface {
	ValidateToken(token string) (*model.SessionClaims, error)
}

// UserLookup resolves a session subject to its user.
type UserLookup interface {
	ResolveByID(ctx context.Context, id string) (*model.User, error)
}

// extractBearer returns the Authorization bearer token, or "" when the
// header is absent or carries a different scheme.
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}

// APIKeyAuth returns a middleware that authenticates API-key-shaped bearer
// tokens. Requests without a bearer token, or with a token shaped for a
// different mechanism, pass through untouched. A token shaped like one of
// our keys either establishes identity or terminates the request; it is
// never handed to another mechanism.
func APIKeyAuth(keys KeyValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" || !keys.IsAPIKey(token) {
				next.ServeHTTP(w, r)
				return
			}

			user, err := keys.Validate(r.Context(), token)
			if err != nil {
				// Identity is cleared before writing the rejection so
				// nothing from an earlier filter survives.
				r = r.WithContext(ClearUser(r.Context()))
				if errors.Is(err, core.ErrInvalidAPIKey) {
					response.WriteUnauthorized(w, "invalid or expired API key")
					return
				}
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("api key validation failed")
				response.WriteError(w, http.StatusInternalServerError, "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// SessionAuth returns a middleware that authenticates session JWT bearer
// tokens. It only considers tokens no earlier mechanism claimed, and passes
// through on failure so enforcement stays with RequireUser.
func SessionAuth(sessions SessionValidator, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			token := extractBearer(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := sessions.ValidateToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.ResolveByID(r.Context(), claims.Sub)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireUser rejects requests that reached a protected endpoint without any
// mechanism establishing identity. Distinct from the 401 an invalid API key
// earns: this is "nothing recognized", not "recognized but refused".
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			response.WriteForbidden(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
