package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"hinglaj-store/internal/auth"
	"hinglaj-store/internal/metrics"
	"hinglaj-store/internal/model"

	"github.com/rs/zerolog"
)

type contextKey struct{}

var claimsKey = contextKey{}

// ClaimsFromContext retrieves the verified credential claims placed by
// AuthRequired.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// ContextWithClaims attaches claims to a context. Exposed for handler tests.
func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}

// AuthRequired verifies the Bearer credential and stores its claims in the
// request context. Identity and role are trusted from the signed token alone;
// there is no server-side freshness check.
func AuthRequired(tokens *auth.TokenManager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.AuthAttempts.Inc()

			header := r.Header.Get("Authorization")
			if header == "" {
				metrics.AuthFailures.Inc()
				logger.Warn().Str("path", r.URL.Path).Msg("missing authorization header")
				writeAuthError(w, http.StatusUnauthorized, "Missing authorization token")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailures.Inc()
				logger.Warn().Str("path", r.URL.Path).Msg("malformed authorization header")
				writeAuthError(w, http.StatusUnauthorized, "Invalid authorization format, expected Bearer token")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthFailures.Inc()
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid token")
				writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole gates a handler on the role claim of an already-verified
// credential. Must be applied inside AuthRequired.
func RequireRole(role string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Missing authorization token")
				return
			}
			if claims.Role != role {
				logger.Warn().
					Str("path", r.URL.Path).
					Int("user_id", claims.UserID).
					Str("role", claims.Role).
					Msg("role gate denied")
				writeAuthError(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
