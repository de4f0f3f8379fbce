package domain

import "time"

type User struct {
	ID           int64 // auto-increment, stable for the account's lifetime
	Username     string
	Email        string
	PasswordHash string  // bcrypt encoded
	MFAEnabled   bool    // true iff MFASecret is set
	MFASecret    *string // AES-256-CBC envelope of the base32 TOTP secret
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMFA reports whether a usable second factor is configured.
func (u User) HasMFA() bool {
	return u.MFAEnabled && u.MFASecret != nil && *u.MFASecret != ""
}
