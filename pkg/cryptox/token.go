package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

// Recovery codes are two groups of five characters drawn from an alphabet
// without look-alike glyphs (no 0/O, 1/I/L).
const (
	recoveryAlphabet  = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	recoveryGroupSize = 5
	recoveryGroups    = 2
)

// GenerateRecoveryCode returns a single code in the form XXXXX-XXXXX.
func GenerateRecoveryCode() (string, error) {
	var sb strings.Builder
	alphabetLen := big.NewInt(int64(len(recoveryAlphabet)))
	for g := range recoveryGroups {
		if g > 0 {
			sb.WriteByte('-')
		}
		for range recoveryGroupSize {
			n, err := rand.Int(rand.Reader, alphabetLen)
			if err != nil {
				return "", fmt.Errorf("failed to generate recovery code: %w", err)
			}
			sb.WriteByte(recoveryAlphabet[n.Int64()])
		}
	}
	return sb.String(), nil
}

// GenerateRecoveryCodes returns n distinct recovery codes.
func GenerateRecoveryCodes(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("recovery code count must be positive, got %d", n)
	}
	seen := make(map[string]struct{}, n)
	codes := make([]string, 0, n)
	for len(codes) < n {
		code, err := GenerateRecoveryCode()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// NormalizeRecoveryCode uppercases the code and strips spaces and dashes so
// that "abcde fghjk" and "ABCDE-FGHJK" fingerprint identically.
func NormalizeRecoveryCode(code string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t':
			return -1
		}
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		return r
	}, code)
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// This is used to store hashed tokens in databases, allowing lookup without
// storing the original token value.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
