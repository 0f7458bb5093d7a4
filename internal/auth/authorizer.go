package auth

import (
	"errors"

	"chowline/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Claims is the decoded identity attached to an authenticated request.
type Claims struct {
	UserID  string
	IsAdmin bool
}

// Authorization failures. Missing or undecodable tokens are Unauthorized;
// an authenticated identity lacking the admin claim on an admin route is
// Forbidden. Neither is ever retried or downgraded.
var (
	ErrMissingToken  = model.NewDomainError(model.ErrCodeUnauthorised, "Authorization token is missing")
	ErrInvalidToken  = model.NewDomainError(model.ErrCodeUnauthorised, "Authorization token is invalid")
	ErrAdminRequired = model.NewDomainError(model.ErrCodeForbidden, "Admin privileges are required")
)

// Authorizer is the request-time access gate. It is stateless per request:
// one pass over the injected rule tables plus a token decode.
type Authorizer struct {
	secret []byte
	rules  Ruleset
	logger zerolog.Logger
}

// NewAuthorizer creates an Authorizer verifying HS256 tokens signed with
// secret against the given ruleset.
func NewAuthorizer(secret string, rules Ruleset, logger zerolog.Logger) *Authorizer {
	return &Authorizer{
		secret: []byte(secret),
		rules:  rules,
		logger: logger.With().Str("component", "authorizer").Logger(),
	}
}

// Authorize decides whether a request may proceed. It returns the decoded
// claims for authenticated requests, or nil claims for a public bypass.
//
// Public rules are authentication exemptions only, never privilege
// exemptions: they let a token-less request through, but a supplied token
// is always decoded and privilege-checked.
func (a *Authorizer) Authorize(path, method, rawToken string) (*Claims, error) {
	if rawToken == "" {
		if a.isPublic(path, method) {
			return nil, nil
		}
		return nil, ErrMissingToken
	}

	claims, err := a.decode(rawToken)
	if err != nil {
		a.logger.Warn().Str("path", path).Str("method", method).Err(err).Msg("token rejected")
		return nil, ErrInvalidToken
	}

	// Override routes are open to any authenticated identity even where
	// they overlap an admin-protected prefix.
	for _, r := range a.rules.UserOverrideRules {
		if r.Matches(path, method) {
			return claims, nil
		}
	}

	if !claims.IsAdmin {
		for _, r := range a.rules.AdminRules {
			if r.Matches(path, method) {
				a.logger.Warn().
					Str("path", path).
					Str("method", method).
					Str("user_id", claims.UserID).
					Msg("admin route denied")
				return nil, ErrAdminRequired
			}
		}
	}

	return claims, nil
}

// isPublic reports whether the path/method pair is exempt from
// authentication.
func (a *Authorizer) isPublic(path, method string) bool {
	if _, ok := a.rules.PublicPaths[path]; ok {
		return true
	}
	for _, r := range a.rules.PublicRules {
		if r.Matches(path, method) {
			return true
		}
	}
	return false
}

// decode verifies the token signature and extracts the identity claims.
func (a *Authorizer) decode(rawToken string) (*Claims, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	userID, _ := mapClaims["userId"].(string)
	if userID == "" {
		return nil, errors.New("missing userId claim")
	}
	isAdmin, _ := mapClaims["isAdmin"].(bool)

	return &Claims{UserID: userID, IsAdmin: isAdmin}, nil
}
