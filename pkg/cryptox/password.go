package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the work factor existing Doc-IT hashes were
// created with.
const DefaultBcryptCost = 10

// MaxPasswordBytes is the bcrypt input limit. Longer passwords are truncated
// before hashing and comparing, so only the first MaxPasswordBytes count.
const MaxPasswordBytes = 72

// ErrPasswordMismatch is returned by VerifyPassword when the password does not match.
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword returns a bcrypt hash of password. A cost of zero selects
// DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("bcrypt cost %d out of range", cost)
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
func VerifyPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	if err != nil {
		return fmt.Errorf("invalid password hash: %w", err)
	}
	return nil
}

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}
