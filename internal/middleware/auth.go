package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"chowline/internal/auth"
	"chowline/internal/model"

	"github.com/rs/zerolog"
)

type contextKey string

// claimsKey is the request-context key carrying the decoded identity.
const claimsKey contextKey = "auth_claims"

// ClaimsFromContext returns the identity attached by AccessControl, or nil
// for a public-bypass request.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// AccessControl gates every request through the access decision layer
// before any handler logic runs.
func AccessControl(authorizer *auth.Authorizer, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := authorizer.Authorize(r.URL.Path, r.Method, bearerToken(r))
			if err != nil {
				status := http.StatusUnauthorized
				code := model.ErrCodeUnauthorised
				var domainErr *model.DomainError
				if errors.As(err, &domainErr) && domainErr.Code == model.ErrCodeForbidden {
					status = http.StatusForbidden
					code = model.ErrCodeForbidden
				}

				logger.Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", status).
					Msg("request denied")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(model.ErrorResponse{Error: code, Message: err.Error()})
				return
			}

			if claims != nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an Authorization: Bearer header.
// Returns "" when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return ""
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
