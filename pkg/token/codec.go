// Package token decodes identity and refresh tokens issued by the account API.
//
// The client never holds signing keys, so tokens are decoded without
// signature verification. Decoding only answers "who does this token claim
// to be, and is it still live"; the server remains the authority.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned by Parse when a token cannot be decoded.
var ErrMalformedToken = errors.New("token: malformed token")

// User is the opaque user payload embedded in identity token claims.
type User map[string]interface{}

// String returns the string value stored under key, or "".
func (u User) String(key string) string {
	if u == nil {
		return ""
	}
	s, _ := u[key].(string)
	return s
}

// Email returns the "email" field.
func (u User) Email() string { return u.String("email") }

// Name returns the "name" field.
func (u User) Name() string { return u.String("name") }

// Claims is the decoded payload of a token.
type Claims struct {
	User User `json:"user,omitempty"`
	jwt.RegisteredClaims
}

// Expiry returns the expiry instant. Parse guarantees it is set.
func (c *Claims) Expiry() time.Time {
	return c.ExpiresAt.Time
}

// Codec decodes tokens against a clock.
type Codec struct {
	now    func() time.Time
	parser *jwt.Parser
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec creates a Codec using the wall clock unless overridden.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		now: time.Now,
		// Expiry is checked by Payload against our own clock, so expired
		// tokens still decode here.
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse decodes raw without verifying its signature.
// Any failure, including a missing "exp" claim, wraps ErrMalformedToken.
func (c *Codec) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := c.parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	return claims, nil
}

// Payload returns the claims of a live token, or nil when raw is empty,
// malformed, or at/after its expiry.
func (c *Codec) Payload(raw string) *Claims {
	if raw == "" {
		return nil
	}

	claims, err := c.Parse(raw)
	if err != nil {
		return nil
	}

	if !c.now().Before(claims.Expiry()) {
		return nil
	}
	return claims
}
