package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the client can read from a session token without the
// signing key.
type TokenClaims struct {
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the token has an expiry that lies before now.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseTokenClaims decodes a JWT without verifying its signature. Only the
// server can verify; the client uses the claims for display and to drop a
// session that has already expired.
func ParseTokenClaims(token string) (TokenClaims, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, fmt.Errorf("failed to parse token: %w", err)
	}

	out := TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
