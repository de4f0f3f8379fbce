package authsdk

import (
	"context"
	"net/http"
)

// GenerateMFASecret starts TOTP enrollment for the session's user.
func (s *Session) GenerateMFASecret(ctx context.Context) (*GenerateSecretResponse, error) {
	var out GenerateSecretResponse
	if err := s.do(ctx, http.MethodPost, "/auth/mfa/generate-secret", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyMFASetup confirms enrollment with a current code and returns the
// recovery codes. secret may be empty.
func (s *Session) VerifyMFASetup(ctx context.Context, code, secret string) (*RecoveryCodesResponse, error) {
	var out RecoveryCodesResponse
	req := VerifySetupRequest{Token: code, Secret: secret}
	if err := s.do(ctx, http.MethodPost, "/auth/mfa/verify-setup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MFAStatus reports whether MFA is enabled for the session's user.
func (s *Session) MFAStatus(ctx context.Context) (*MFAStatusResponse, error) {
	var out MFAStatusResponse
	if err := s.do(ctx, http.MethodGet, "/auth/mfa/status-mfa", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DisableMFA turns MFA off. Requires a current TOTP code.
func (s *Session) DisableMFA(ctx context.Context, code string) error {
	var out MessageResponse
	return s.do(ctx, http.MethodPost, "/auth/mfa/disable", MFACodeRequest{MFACode: code}, &out)
}

// RegenerateRecoveryCodes replaces all recovery codes. Requires a current
// TOTP code.
func (s *Session) RegenerateRecoveryCodes(ctx context.Context, code string) (*RecoveryCodesResponse, error) {
	var out RecoveryCodesResponse
	if err := s.do(ctx, http.MethodPost, "/auth/mfa/recovery-codes", MFACodeRequest{MFACode: code}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
