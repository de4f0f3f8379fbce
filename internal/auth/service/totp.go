package service

import (
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTP parameters are the authenticator-app defaults and must not change
// once users have enrolled.
const (
	totpPeriod     = 30
	totpSkew       = 1
	totpDigits     = otp.DigitsSix
	totpAlgorithm  = otp.AlgorithmSHA1
	totpSecretSize = 20

	// DefaultIssuer is shown as the account's provider in authenticator apps.
	DefaultIssuer = "Doc-IT"
)

// TOTPEngine generates and checks RFC 6238 codes.
type TOTPEngine struct {
	Issuer string
	Now    func() time.Time
}

func (e *TOTPEngine) issuer() string {
	if e.Issuer == "" {
		return DefaultIssuer
	}
	return e.Issuer
}

func (e *TOTPEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// GenerateSecret creates a fresh base32 secret and its provisioning URI.
func (e *TOTPEngine) GenerateSecret(accountLabel string) (domain.MFAEnrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      e.issuer(),
		AccountName: accountLabel,
		Period:      totpPeriod,
		SecretSize:  totpSecretSize,
		Digits:      totpDigits,
		Algorithm:   totpAlgorithm,
	})
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}
	return domain.MFAEnrollment{SecretKey: key.Secret(), OtpauthURL: key.URL()}, nil
}

// ProvisioningURI rebuilds the otpauth:// URI for an existing secret.
func (e *TOTPEngine) ProvisioningURI(accountLabel, secret string) (string, error) {
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(strings.TrimRight(secret, "=")))
	if err != nil {
		return "", fmt.Errorf("invalid TOTP secret: %w", err)
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      e.issuer(),
		AccountName: accountLabel,
		Period:      totpPeriod,
		Secret:      raw,
		Digits:      totpDigits,
		Algorithm:   totpAlgorithm,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build TOTP URI: %w", err)
	}
	return key.URL(), nil
}

// Verify checks code against secret, accepting one step of clock drift in
// either direction. A code of the wrong length is simply invalid; a secret
// that is not valid base32 is an error.
func (e *TOTPEngine) Verify(code, secret string) (bool, error) {
	ok, err := totp.ValidateCustom(code, secret, e.now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    totpDigits,
		Algorithm: totpAlgorithm,
	})
	if errors.Is(err, otp.ErrValidateInputInvalidLength) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("totp: %w", err)
	}
	return ok, nil
}
