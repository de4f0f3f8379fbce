package domain

import "time"

// MFAEnrollment is handed to the user when they start TOTP setup.
type MFAEnrollment struct {
	SecretKey  string // base32 TOTP secret
	OtpauthURL string // otpauth://totp/... provisioning URI for QR codes
}

// PendingEnrollment is the server-side half of an enrollment: the secret
// waiting to be confirmed with a first valid code.
type PendingEnrollment struct {
	UserID          int64
	SecretEncrypted string
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// Expired reports whether the enrollment can no longer be confirmed.
func (e PendingEnrollment) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// RecoveryCode is a single-use fallback for a lost authenticator. Only the
// fingerprint of the code is stored.
type RecoveryCode struct {
	ID        string // ULID
	UserID    int64
	CodeHash  string
	UsedAt    *time.Time
	CreatedAt time.Time
}
