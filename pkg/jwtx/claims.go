package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed = errors.New("jwtx: malformed token")
	ErrEmpty     = errors.New("jwtx: empty token")
)

// Claims are the access-token claims the dashboard displays. The client
// never holds the signing key, so these are read without verification.
type Claims struct {
	jwt.RegisteredClaims

	/* Backend custom fields */

	// UserID of the account the token was issued to
	UserID string `json:"userId,omitempty"`

	// Email of the account the token was issued to
	Email string `json:"email,omitempty"`
}

// ParseUnverified decodes the claims of raw without checking the signature.
// Never use the result for authorization decisions.
func ParseUnverified(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrEmpty
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}

	return &claims, nil
}

// Identity returns the best available user label: email, then user id,
// then subject.
func (c *Claims) Identity() string {
	switch {
	case c.Email != "":
		return c.Email
	case c.UserID != "":
		return c.UserID
	default:
		return c.Subject
	}
}

// ExpiresIn returns the time left until exp, or 0 when exp is missing or
// already passed. Informational only; the client discovers expiry via 401.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
