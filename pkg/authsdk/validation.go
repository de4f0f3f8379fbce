package authsdk

import "strings"

// Validate checks that every field is present.
func (r RegisterRequest) Validate() error {
	if blank(r.Username) || r.Password == "" || blank(r.Email) {
		return ErrRegisterFieldsRequired
	}
	return nil
}

// Validate checks that both credentials are present.
func (r LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return ErrLoginFieldsRequired
	}
	return nil
}

// Validate checks that a positive user id and a code are present.
func (r VerifyMFARequest) Validate() error {
	if r.UserID <= 0 || blank(r.MFACode) {
		return ErrVerifyMFAFieldsRequired
	}
	return nil
}

// Validate checks that a positive user id and a code are present.
func (r VerifyRecoveryRequest) Validate() error {
	if r.UserID <= 0 || blank(r.RecoveryCode) {
		return ErrVerifyRecoveryFieldsRequired
	}
	return nil
}

// Validate checks that the TOTP code is present. Secret is optional.
func (r VerifySetupRequest) Validate() error {
	if blank(r.Token) {
		return ErrSetupTokenRequired
	}
	return nil
}

// Validate checks that the TOTP code is present.
func (r MFACodeRequest) Validate() error {
	if blank(r.MFACode) {
		return ErrMFACodeRequired
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
