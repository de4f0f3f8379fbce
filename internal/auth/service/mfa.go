package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
	"github.com/aussiebroadwan/docit/internal/auth/store"
	"github.com/aussiebroadwan/docit/pkg/cryptox"
	"github.com/aussiebroadwan/docit/pkg/idx"
	"github.com/aussiebroadwan/docit/pkg/slogx"
)

const (
	DefaultEnrollmentTTL     = 10 * time.Minute
	DefaultRecoveryCodeCount = 10
)

// MFAService drives TOTP enrollment for an authenticated user:
// GenerateSecret -> VerifyAndActivate -> (Disable).
type MFAService struct {
	Store             store.Store
	Cipher            SecretCipher
	TOTP              *TOTPEngine
	EnrollmentTTL     time.Duration
	RecoveryCodeCount int
	Now               func() time.Time
}

// MFAStatus is the read-only view returned by Status.
type MFAStatus struct {
	Enabled                bool
	RecoveryCodesRemaining int
}

// GenerateSecret starts an enrollment. The secret is returned to the caller
// once and kept server side, encrypted, until it is confirmed or expires.
// Calling it again replaces the pending secret.
func (s *MFAService) GenerateSecret(ctx context.Context, userID int64) (domain.MFAEnrollment, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return domain.MFAEnrollment{}, err
	}
	if u.MFAEnabled {
		return domain.MFAEnrollment{}, validationError(msgMFAAlreadyEnabled)
	}

	enrollment, err := s.TOTP.GenerateSecret(u.Email)
	if err != nil {
		return domain.MFAEnrollment{}, internalError("failed to generate MFA secret", err)
	}

	enc, err := s.Cipher.Encrypt(enrollment.SecretKey)
	if err != nil {
		return domain.MFAEnrollment{}, internalError("failed to encrypt MFA secret", err)
	}

	now := s.now()
	err = s.Store.Enrollments().UpsertEnrollment(ctx, domain.PendingEnrollment{
		UserID:          u.ID,
		SecretEncrypted: enc,
		ExpiresAt:       now.Add(s.enrollmentTTL()),
		CreatedAt:       now,
	})
	if err != nil {
		return domain.MFAEnrollment{}, internalError("failed to store pending enrollment", err)
	}

	return enrollment, nil
}

// VerifyAndActivate confirms the pending enrollment with a first code and
// enables MFA. submittedSecret is optional; when present it must be the
// secret that GenerateSecret handed out. The returned recovery codes are
// only ever shown here.
func (s *MFAService) VerifyAndActivate(ctx context.Context, userID int64, code, submittedSecret string) ([]string, error) {
	if strings.TrimSpace(code) == "" {
		return nil, validationError("token is required")
	}

	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.MFAEnabled {
		return nil, validationError(msgMFAAlreadyEnabled)
	}

	now := s.now()
	pending, err := s.Store.Enrollments().GetEnrollment(ctx, u.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, validationError(msgNoPendingMFA)
	}
	if err != nil {
		return nil, internalError("failed to load pending enrollment", err)
	}
	if pending.Expired(now) {
		_ = s.Store.Enrollments().DeleteEnrollment(ctx, u.ID)
		return nil, validationError(msgNoPendingMFA)
	}

	secret, err := s.Cipher.Decrypt(pending.SecretEncrypted)
	if err != nil {
		return nil, internalError("failed to decrypt MFA secret", err)
	}

	if submittedSecret != "" && !sameSecret(submittedSecret, secret) {
		return nil, validationError(msgInvalidCode)
	}

	ok, err := s.TOTP.Verify(code, secret)
	if err != nil {
		return nil, internalError("pending MFA secret unusable", err)
	}
	if !ok {
		return nil, validationError(msgInvalidCode)
	}

	plain, hashed, err := s.newRecoveryCodes(u.ID, now)
	if err != nil {
		return nil, internalError("failed to generate recovery codes", err)
	}

	// Claiming the pending row first makes a concurrent activation, or a
	// secret regenerated since the read above, lose here.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Enrollments().ClaimEnrollment(ctx, u.ID, pending.SecretEncrypted); err != nil {
			return fmt.Errorf("claim pending enrollment: %w", err)
		}
		if err := tx.Users().EnableMFA(ctx, u.ID, pending.SecretEncrypted, now); err != nil {
			return fmt.Errorf("enable mfa: %w", err)
		}
		if err := tx.RecoveryCodes().DeleteAllRecoveryCodes(ctx, u.ID); err != nil {
			return fmt.Errorf("clear recovery codes: %w", err)
		}
		if err := tx.RecoveryCodes().CreateRecoveryCodes(ctx, hashed); err != nil {
			return fmt.Errorf("store recovery codes: %w", err)
		}
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, validationError(msgNoPendingMFA)
	}
	if err != nil {
		return nil, internalError("failed to activate MFA", err)
	}

	slogx.FromContext(ctx).Info("mfa enabled", "user_id", u.ID)
	return plain, nil
}

// Disable turns MFA off after checking a current code. The flag, secret,
// recovery codes and any pending enrollment are removed together.
func (s *MFAService) Disable(ctx context.Context, userID int64, code string) error {
	if strings.TrimSpace(code) == "" {
		return validationError("mfaCode is required")
	}

	u, err := s.verifiedMFAUser(ctx, userID, code)
	if err != nil {
		return err
	}

	now := s.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().DisableMFA(ctx, u.ID, now); err != nil {
			return fmt.Errorf("disable mfa: %w", err)
		}
		if err := tx.RecoveryCodes().DeleteAllRecoveryCodes(ctx, u.ID); err != nil {
			return fmt.Errorf("clear recovery codes: %w", err)
		}
		if err := tx.Enrollments().DeleteEnrollment(ctx, u.ID); err != nil {
			return fmt.Errorf("delete pending enrollment: %w", err)
		}
		return nil
	})
	if err != nil {
		return internalError("failed to disable MFA", err)
	}

	slogx.FromContext(ctx).Info("mfa disabled", "user_id", u.ID)
	return nil
}

// RegenerateRecoveryCodes replaces every recovery code after checking a
// current TOTP code.
func (s *MFAService) RegenerateRecoveryCodes(ctx context.Context, userID int64, code string) ([]string, error) {
	if strings.TrimSpace(code) == "" {
		return nil, validationError("mfaCode is required")
	}

	u, err := s.verifiedMFAUser(ctx, userID, code)
	if err != nil {
		return nil, err
	}

	plain, hashed, err := s.newRecoveryCodes(u.ID, s.now())
	if err != nil {
		return nil, internalError("failed to generate recovery codes", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RecoveryCodes().DeleteAllRecoveryCodes(ctx, u.ID); err != nil {
			return fmt.Errorf("clear recovery codes: %w", err)
		}
		return tx.RecoveryCodes().CreateRecoveryCodes(ctx, hashed)
	})
	if err != nil {
		return nil, internalError("failed to store recovery codes", err)
	}
	return plain, nil
}

// Status reports whether MFA is enabled. It never modifies state.
func (s *MFAService) Status(ctx context.Context, userID int64) (MFAStatus, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return MFAStatus{}, err
	}

	st := MFAStatus{Enabled: u.MFAEnabled}
	if u.MFAEnabled {
		n, err := s.Store.RecoveryCodes().CountUnusedRecoveryCodes(ctx, u.ID)
		if err != nil {
			return MFAStatus{}, internalError("failed to count recovery codes", err)
		}
		st.RecoveryCodesRemaining = n
	}
	return st, nil
}

func (s *MFAService) user(ctx context.Context, userID int64) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, notFoundError(msgUserNotFound)
	}
	if err != nil {
		return domain.User{}, internalError("failed to load user", err)
	}
	return u, nil
}

// verifiedMFAUser loads a user with MFA enabled and checks code against
// their stored secret.
func (s *MFAService) verifiedMFAUser(ctx context.Context, userID int64, code string) (domain.User, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if !u.HasMFA() {
		return domain.User{}, validationError(msgMFANotEnabled)
	}

	secret, err := s.Cipher.Decrypt(*u.MFASecret)
	if err != nil {
		return domain.User{}, internalError("failed to decrypt MFA secret", err)
	}
	ok, err := s.TOTP.Verify(code, secret)
	if err != nil {
		return domain.User{}, internalError("stored MFA secret unusable", err)
	}
	if !ok {
		return domain.User{}, authError(msgInvalidMFACode)
	}
	return u, nil
}

func (s *MFAService) newRecoveryCodes(userID int64, now time.Time) ([]string, []domain.RecoveryCode, error) {
	n := s.RecoveryCodeCount
	if n <= 0 {
		n = DefaultRecoveryCodeCount
	}

	plain, err := cryptox.GenerateRecoveryCodes(n)
	if err != nil {
		return nil, nil, err
	}

	hashed := make([]domain.RecoveryCode, len(plain))
	for i, c := range plain {
		hashed[i] = domain.RecoveryCode{
			ID:        idx.NewAt(now).String(),
			UserID:    userID,
			CodeHash:  cryptox.FingerprintToken(cryptox.NormalizeRecoveryCode(c)),
			CreatedAt: now,
		}
	}
	return plain, hashed, nil
}

func (s *MFAService) enrollmentTTL() time.Duration {
	if s.EnrollmentTTL <= 0 {
		return DefaultEnrollmentTTL
	}
	return s.EnrollmentTTL
}

func (s *MFAService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func sameSecret(a, b string) bool {
	norm := func(s string) []byte {
		return []byte(strings.ToUpper(strings.TrimRight(strings.TrimSpace(s), "=")))
	}
	return subtle.ConstantTimeCompare(norm(a), norm(b)) == 1
}
