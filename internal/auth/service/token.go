package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
	"github.com/aussiebroadwan/docit/pkg/jwtx"
)

// TokenService mints session tokens.
type TokenService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// Issue signs a token for u recording how the user authenticated.
func (s *TokenService) Issue(u domain.User, amr ...string) (string, error) {
	claims := jwtx.NewSessionClaims(u.ID, u.Username, amr, s.TTL, s.Issuer, s.now())
	tok, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tok, nil
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
