// Package token encodes and decodes the HS256 bearer tokens handed out at
// signup and login.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
)

type claims struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec signs tokens with a process-wide secret. A zero TTL issues tokens
// without an exp claim, which stay valid until the secret changes.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

var _ ports.TokenCodec = (*Codec)(nil)

func (c *Codec) Issue(in ports.TokenClaims) (string, error) {
	cl := claims{ID: in.ID, Email: in.Email}
	if c.ttl > 0 {
		cl.ExpiresAt = jwt.NewNumericDate(c.now().Add(c.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (c *Codec) Decode(raw string) (ports.TokenClaims, error) {
	var cl claims
	tkn, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid {
		return ports.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return ports.TokenClaims{ID: cl.ID, Email: cl.Email}, nil
}
