package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the shortest HMAC secret accepted, in bytes.
const MinSecretSize = 32

// ErrWeakSecret is returned when an HMAC secret is shorter than MinSecretSize.
var ErrWeakSecret = errors.New("jwtx: signing secret too short")

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with a shared HMAC-SHA256 secret.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 creates an HS256 signer. The secret is copied.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretSize {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretSize)
	}
	return &HS256Signer{key: append([]byte(nil), secret...)}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}
