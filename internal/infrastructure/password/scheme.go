// Package password provides the ways a submitted password is stored and
// checked.
package password

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
)

const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// Plain stores passwords verbatim and compares them for exact equality.
type Plain struct{}

func (Plain) Prepare(password string) (string, error) {
	return password, nil
}

func (Plain) Compare(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// bcrypt only reads the first 72 bytes of its input.
const bcryptMaxBytes = 72

// Bcrypt stores bcrypt hashes.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Prepare(password string) (string, error) {
	if len(password) > bcryptMaxBytes {
		return "", domain.ErrPasswordTooLong
	}
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (Bcrypt) Compare(stored, submitted string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
}

// New returns the scheme registered under name.
func New(name string) (ports.PasswordScheme, error) {
	switch name {
	case "", SchemePlain:
		return Plain{}, nil
	case SchemeBcrypt:
		return Bcrypt{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}
