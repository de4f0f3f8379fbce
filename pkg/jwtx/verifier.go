package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Verifier validates tokens produced by HS256Signer.
type HS256Verifier struct {
	key    []byte
	issuer string
	leeway time.Duration
}

// NewVerifierHS256 creates a verifier. An empty issuer disables the iss check.
func NewVerifierHS256(secret []byte, issuer string, leeway time.Duration) (*HS256Verifier, error) {
	if len(secret) < MinSecretSize {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretSize)
	}
	return &HS256Verifier{
		key:    append([]byte(nil), secret...),
		issuer: issuer,
		leeway: leeway,
	}, nil
}

// Verify validates the JWT string and returns its parsed Claims. Only HS256
// is accepted; "none" and every other algorithm fail signature checks.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	// Time based claims are checked below so they map onto our own errors.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, fmt.Errorf("%w: %w", ErrInvalidSig, err)
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if claims.ExpiresAt == nil || claims.UserID <= 0 {
		return Claims{}, ErrInvalidClaim
	}
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryWithLeeway(v.leeway); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
