package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned for tokens that are not compact JWTs.
var ErrNotJWT = errors.New("token: not a JWT")

// Claims is the subset of registered claims the client looks at.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero when the token carries no exp
}

// Inspect decodes the registered claims of a JWT without verifying its
// signature.
func Inspect(raw string) (Claims, error) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &rc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	c := Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}

// Expired reports whether raw is a JWT whose exp is at or before now minus
// leeway. Opaque tokens and JWTs without exp are never reported expired.
func Expired(raw string, now time.Time, leeway time.Duration) bool {
	c, err := Inspect(raw)
	if err != nil || c.ExpiresAt.IsZero() {
		return false
	}
	return !c.ExpiresAt.After(now.Add(-leeway))
}
