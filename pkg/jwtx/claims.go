package jwtx

import (
	"strconv"
	"time"

	"github.com/aussiebroadwan/docit/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of a session token. Clients re-login once
// it lapses; there is no refresh.
const DefaultTokenTTL = 24 * time.Hour

// Authentication method references recorded in the "amr" claim.
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
	AMRRecovery = "rec"
)

// Claims are the session-token claims. The "id" and "username" fields are
// what existing Doc-IT clients read; the registered claims are additive.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the numeric account id.
	UserID int64 `json:"id"`

	// Username for the authenticated user
	Username string `json:"username"`

	// Authentication Methods Reference ["pwd","otp"]
	AMR []string `json:"amr,omitempty"`
}

// NewSessionClaims builds claims for a freshly authenticated user.
func NewSessionClaims(
	userID int64,
	username string,
	amr []string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.NewAt(now).String(),
		},
		UserID:   userID,
		Username: username,
		AMR:      amr,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
