// Package cryptox wraps the password hashing used for stored credentials.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost verifies in roughly 100ms on commodity hardware.
const DefaultCost = bcrypt.DefaultCost

// MaxPasswordLen is the bcrypt input limit in bytes.
const MaxPasswordLen = 72

var ErrMismatchedPassword = errors.New("password does not match hash")

// HashPassword returns a salted bcrypt hash of password. Costs outside the
// bcrypt range fall back to DefaultCost.
func HashPassword(password []byte, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// ComparePassword returns nil when password matches hash and
// ErrMismatchedPassword when it does not. Any other error means the hash
// itself is unusable.
func ComparePassword(hash string, password []byte) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), password)
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedPassword
	}
	return fmt.Errorf("compare password: %w", err)
}
