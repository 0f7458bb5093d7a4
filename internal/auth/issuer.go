package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs access tokens on login. The webhook-facing parts of the
// system only ever verify; issuing lives here so the secret has one home.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates a token issuer with the given signing secret and TTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs an HS256 token carrying the identity claims.
func (i *Issuer) Issue(userID string, isAdmin bool, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"userId":  userID,
		"isAdmin": isAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
