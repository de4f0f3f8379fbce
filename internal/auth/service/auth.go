package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
	"github.com/aussiebroadwan/docit/internal/auth/store"
	"github.com/aussiebroadwan/docit/pkg/cryptox"
	"github.com/aussiebroadwan/docit/pkg/jwtx"
	"github.com/aussiebroadwan/docit/pkg/slogx"
)

// AuthService runs the password and second-factor login flows.
type AuthService struct {
	Store      store.Store
	Cipher     SecretCipher
	TOTP       *TOTPEngine
	Tokens     *TokenService
	BcryptCost int

	dummyOnce sync.Once
	dummyHash string
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// LoginResult is either a token or an MFA challenge, never both.
type LoginResult struct {
	Token       string
	MFARequired bool
	UserID      int64
}

// Register creates an account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" || strings.TrimSpace(in.Email) == "" {
		return 0, validationError("username, password and email are required")
	}

	hash, err := cryptox.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return 0, internalError("failed to hash password", err)
	}

	id, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     in.Username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return 0, conflictError("username or email already in use", err)
	}
	if err != nil {
		return 0, internalError("failed to create user", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", id)
	return id, nil
}

// Login checks the password. Users with MFA enabled get a challenge instead
// of a token and must continue with VerifyMFALogin or VerifyRecoveryLogin.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		return LoginResult{}, validationError("username and password are required")
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		// Spend the same bcrypt work as a real comparison.
		_ = cryptox.VerifyPassword(password, s.dummy())
		return LoginResult{}, authError(msgInvalidCredentials)
	}
	if err != nil {
		return LoginResult{}, internalError("failed to load user", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Error("stored password hash unusable", "user_id", u.ID, "err", err)
		}
		return LoginResult{}, authError(msgInvalidCredentials)
	}

	if u.MFAEnabled {
		return LoginResult{MFARequired: true, UserID: u.ID}, nil
	}

	tok, err := s.Tokens.Issue(u, jwtx.AMRPassword)
	if err != nil {
		return LoginResult{}, internalError("failed to issue token", err)
	}
	return LoginResult{Token: tok, UserID: u.ID}, nil
}

// VerifyMFALogin completes a login with a TOTP code. Every authentication
// failure produces the same message so callers cannot probe account state.
func (s *AuthService) VerifyMFALogin(ctx context.Context, userID int64, code string) (string, error) {
	if userID <= 0 || strings.TrimSpace(code) == "" {
		return "", validationError("userId and mfaCode are required")
	}

	u, err := s.mfaUser(ctx, userID, msgInvalidMFALogin)
	if err != nil {
		return "", err
	}

	secret, err := s.Cipher.Decrypt(*u.MFASecret)
	if err != nil {
		return "", internalError("failed to decrypt MFA secret", err)
	}
	ok, err := s.TOTP.Verify(code, secret)
	if err != nil {
		return "", internalError("stored MFA secret unusable", err)
	}
	if !ok {
		return "", authError(msgInvalidMFALogin)
	}

	tok, err := s.Tokens.Issue(u, jwtx.AMRPassword, jwtx.AMROTP)
	if err != nil {
		return "", internalError("failed to issue token", err)
	}
	return tok, nil
}

// VerifyRecoveryLogin completes a login by burning one recovery code.
func (s *AuthService) VerifyRecoveryLogin(ctx context.Context, userID int64, code string) (string, error) {
	normalized := cryptox.NormalizeRecoveryCode(code)
	if userID <= 0 || normalized == "" {
		return "", validationError("userId and recoveryCode are required")
	}

	u, err := s.mfaUser(ctx, userID, msgInvalidRecovery)
	if err != nil {
		return "", err
	}

	consumed, err := s.Store.RecoveryCodes().ConsumeRecoveryCode(ctx, u.ID, cryptox.FingerprintToken(normalized), s.Tokens.now())
	if err != nil {
		return "", internalError("failed to consume recovery code", err)
	}
	if !consumed {
		return "", authError(msgInvalidRecovery)
	}

	log := slogx.FromContext(ctx)
	if remaining, err := s.Store.RecoveryCodes().CountUnusedRecoveryCodes(ctx, u.ID); err == nil {
		log.Warn("recovery code used", "user_id", u.ID, "remaining", remaining)
	}

	tok, err := s.Tokens.Issue(u, jwtx.AMRPassword, jwtx.AMRRecovery)
	if err != nil {
		return "", internalError("failed to issue token", err)
	}
	return tok, nil
}

// mfaUser loads a user that must have MFA configured. Missing users and
// users without MFA both yield authError(msg).
func (s *AuthService) mfaUser(ctx context.Context, userID int64, msg string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, authError(msg)
	}
	if err != nil {
		return domain.User{}, internalError("failed to load user", err)
	}
	if !u.HasMFA() {
		return domain.User{}, authError(msg)
	}
	return u, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = cryptox.HashPassword("docit-timing-equaliser", s.BcryptCost)
	})
	return s.dummyHash
}
