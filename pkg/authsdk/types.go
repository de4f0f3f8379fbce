package authsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// MessageResponse is returned by endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message" example:"MFA disabled"`
}

// ============================================================================
// Identifiers
// ============================================================================

// UserID is a numeric user identifier. It decodes from either a JSON number
// or a string holding a base-10 integer, since browser clients commonly
// echo the id back as a string.
type UserID int64

// UnmarshalJSON implements json.Unmarshaler.
func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*id = 0
			return nil
		}
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("userId must be an integer: %w", err)
	}
	*id = UserID(n)
	return nil
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw123"`
	Email    string `json:"email" example:"alice@example.com"`
}

// RegisterResponse is returned with 201 Created.
type RegisterResponse struct {
	Message string `json:"message" example:"user created"`
	UserID  int64  `json:"userId" example:"1"`
}

// LoginRequest starts a password login.
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw123"`
}

// LoginResponse carries either a token, or an MFA challenge with the user id
// to send back to /auth/mfa/verify-mfa.
type LoginResponse struct {
	Token       string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	MFARequired bool   `json:"mfaRequired,omitempty" example:"true"`
	UserID      int64  `json:"userId,omitempty" example:"1"`
}

// VerifyMFARequest completes an MFA login with a TOTP code.
type VerifyMFARequest struct {
	UserID  UserID `json:"userId" swaggertype:"integer" example:"1"`
	MFACode string `json:"mfaCode" example:"123456"`
}

// VerifyRecoveryRequest completes an MFA login with a recovery code.
type VerifyRecoveryRequest struct {
	UserID       UserID `json:"userId" swaggertype:"integer" example:"1"`
	RecoveryCode string `json:"recoveryCode" example:"ABCDE-FGHJK"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ============================================================================
// MFA Types
// ============================================================================

// GenerateSecretResponse is the enrollment material shown to the user once.
type GenerateSecretResponse struct {
	OtpauthURL string `json:"otpauthUrl" example:"otpauth://totp/Doc-IT:alice@example.com?algorithm=SHA1&digits=6&issuer=Doc-IT&period=30&secret=JBSWY3DPEHPK3PXP"`
	SecretKey  string `json:"secretKey" example:"JBSWY3DPEHPK3PXP"`
}

// VerifySetupRequest confirms an enrollment. Secret is optional; when sent
// it must match the pending secret.
type VerifySetupRequest struct {
	Token  string `json:"token" example:"123456"`
	Secret string `json:"secret,omitempty" example:"JBSWY3DPEHPK3PXP"`
}

// MFACodeRequest carries a current TOTP code for step-up operations.
type MFACodeRequest struct {
	MFACode string `json:"mfaCode" example:"123456"`
}

// RecoveryCodesResponse returns freshly generated recovery codes. They are
// not retrievable again.
type RecoveryCodesResponse struct {
	Message       string   `json:"message" example:"MFA enabled"`
	RecoveryCodes []string `json:"recoveryCodes"`
}

// MFAStatusResponse reports the caller's MFA state.
type MFAStatusResponse struct {
	Enabled                bool `json:"enabled" example:"true"`
	RecoveryCodesRemaining int  `json:"recoveryCodesRemaining" example:"10"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status" example:"ok"`

	// Uptime is the service uptime as a duration string
	Uptime string `json:"uptime" example:"1h2m3s"`

	// Version is the build version
	Version string `json:"version" example:"dev"`

	// Checks is only present on readiness responses
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks contains per-dependency readiness results.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
}
