package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
	"github.com/aussiebroadwan/docit/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.register(t, "alice")

	enr, err := env.mfa.GenerateSecret(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, enr.SecretKey)

	u, err := url.Parse(enr.OtpauthURL)
	require.NoError(t, err)
	require.Equal(t, "otpauth", u.Scheme)
	require.Equal(t, "totp", u.Host)
	require.Contains(t, u.Path, "alice@example.com")
	require.Equal(t, DefaultIssuer, u.Query().Get("issuer"))
	require.Equal(t, enr.SecretKey, u.Query().Get("secret"))

	t.Run("pending secret is stored encrypted", func(t *testing.T) {
		p, err := env.store.Enrollments().GetEnrollment(ctx, id)
		require.NoError(t, err)
		require.NotContains(t, p.SecretEncrypted, enr.SecretKey)

		plain, err := env.cipher.Decrypt(p.SecretEncrypted)
		require.NoError(t, err)
		require.Equal(t, enr.SecretKey, plain)
	})

	t.Run("does not enable MFA", func(t *testing.T) {
		st, err := env.mfa.Status(ctx, id)
		require.NoError(t, err)
		require.False(t, st.Enabled)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.mfa.GenerateSecret(ctx, 999999)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("already enabled", func(t *testing.T) {
		other := env.register(t, "bob")
		env.enableMFA(t, other)

		_, err := env.mfa.GenerateSecret(ctx, other)
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, msgMFAAlreadyEnabled, PublicMessage(err))
	})
}

func TestVerifyAndActivate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("activates and returns recovery codes", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.register(t, "carol")

		enr, err := env.mfa.GenerateSecret(ctx, id)
		require.NoError(t, err)

		codes, err := env.mfa.VerifyAndActivate(ctx, id, currentCode(t, enr.SecretKey), enr.SecretKey)
		require.NoError(t, err)
		require.Len(t, codes, DefaultRecoveryCodeCount)

		u, err := env.store.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.True(t, u.MFAEnabled)
		require.NotNil(t, u.MFASecret)
		require.NotEqual(t, enr.SecretKey, *u.MFASecret)

		plain, err := env.cipher.Decrypt(*u.MFASecret)
		require.NoError(t, err)
		require.Equal(t, enr.SecretKey, plain)

		_, err = env.store.Enrollments().GetEnrollment(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)

		st, err := env.mfa.Status(ctx, id)
		require.NoError(t, err)
		require.True(t, st.Enabled)
		require.Equal(t, DefaultRecoveryCodeCount, st.RecoveryCodesRemaining)
	})

	t.Run("wrong code leaves state untouched", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.register(t, "dave")
		enr, err := env.mfa.GenerateSecret(ctx, id)
		require.NoError(t, err)

		_, err = env.mfa.VerifyAndActivate(ctx, id, wrongCode(t, enr.SecretKey), "")
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, msgInvalidCode, PublicMessage(err))

		u, err := env.store.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.False(t, u.MFAEnabled)
		require.Nil(t, u.MFASecret)

		// The pending enrollment survives so the user can retry.
		_, err = env.mfa.VerifyAndActivate(ctx, id, currentCode(t, enr.SecretKey), "")
		require.NoError(t, err)
	})

	t.Run("secret must match the issued one", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.register(t, "erin")
		enr, err := env.mfa.GenerateSecret(ctx, id)
		require.NoError(t, err)

		attacker, err := env.mfa.TOTP.GenerateSecret("x@example.com")
		require.NoError(t, err)

		_, err = env.mfa.VerifyAndActivate(ctx, id, currentCode(t, attacker.SecretKey), attacker.SecretKey)
		require.ErrorIs(t, err, ErrValidation)

		_, err = env.mfa.VerifyAndActivate(ctx, id, currentCode(t, enr.SecretKey), attacker.SecretKey)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("no pending enrollment", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.register(t, "frank")

		_, err := env.mfa.VerifyAndActivate(ctx, id, "123456", "")
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, msgNoPendingMFA, PublicMessage(err))
	})

	t.Run("expired enrollment", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.register(t, "gina")
		enr, err := env.mfa.GenerateSecret(ctx, id)
		require.NoError(t, err)

		env.mfa.Now = func() time.Time { return time.Now().Add(DefaultEnrollmentTTL + time.Minute) }
		_, err = env.mfa.VerifyAndActivate(ctx, id, currentCode(t, enr.SecretKey), "")
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, msgNoPendingMFA, PublicMessage(err))
	})

	t.Run("regenerate replaces pending secret", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.register(t, "hank")
		first, err := env.mfa.GenerateSecret(ctx, id)
		require.NoError(t, err)
		second, err := env.mfa.GenerateSecret(ctx, id)
		require.NoError(t, err)
		require.NotEqual(t, first.SecretKey, second.SecretKey)

		_, err = env.mfa.VerifyAndActivate(ctx, id, currentCode(t, second.SecretKey), "")
		require.NoError(t, err)
	})

	t.Run("enrollment consumed by a concurrent request", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.register(t, "jane")
		enr, err := env.mfa.GenerateSecret(ctx, id)
		require.NoError(t, err)

		env.mfa.Store = consumingStore{Store: env.store}
		_, err = env.mfa.VerifyAndActivate(ctx, id, currentCode(t, enr.SecretKey), "")
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, msgNoPendingMFA, PublicMessage(err))

		u, err := env.store.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.False(t, u.MFAEnabled)
		require.Nil(t, u.MFASecret)

		n, err := env.store.RecoveryCodes().CountUnusedRecoveryCodes(ctx, id)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("missing code", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.register(t, "ivan")
		_, err := env.mfa.VerifyAndActivate(ctx, id, "", "")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestDisable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.register(t, "jane")

	t.Run("not enabled", func(t *testing.T) {
		err := env.mfa.Disable(ctx, id, "123456")
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, msgMFANotEnabled, PublicMessage(err))
	})

	secret, _ := env.enableMFA(t, id)

	t.Run("wrong code keeps MFA on", func(t *testing.T) {
		err := env.mfa.Disable(ctx, id, wrongCode(t, secret))
		require.ErrorIs(t, err, ErrAuth)
		require.Equal(t, msgInvalidMFACode, PublicMessage(err))

		st, err := env.mfa.Status(ctx, id)
		require.NoError(t, err)
		require.True(t, st.Enabled)
	})

	t.Run("valid code clears flag secret and recovery codes", func(t *testing.T) {
		require.NoError(t, env.mfa.Disable(ctx, id, currentCode(t, secret)))

		u, err := env.store.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.False(t, u.MFAEnabled)
		require.Nil(t, u.MFASecret)

		n, err := env.store.RecoveryCodes().CountUnusedRecoveryCodes(ctx, id)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("login no longer challenges", func(t *testing.T) {
		res, err := env.auth.Login(ctx, "jane", "password-jane")
		require.NoError(t, err)
		require.False(t, res.MFARequired)
		require.NotEmpty(t, res.Token)
	})

	t.Run("missing code", func(t *testing.T) {
		require.ErrorIs(t, env.mfa.Disable(ctx, id, " "), ErrValidation)
	})
}

func TestRegenerateRecoveryCodes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.register(t, "kate")
	secret, old := env.enableMFA(t, id)

	_, err := env.mfa.RegenerateRecoveryCodes(ctx, id, wrongCode(t, secret))
	require.ErrorIs(t, err, ErrAuth)

	fresh, err := env.mfa.RegenerateRecoveryCodes(ctx, id, currentCode(t, secret))
	require.NoError(t, err)
	require.Len(t, fresh, DefaultRecoveryCodeCount)

	_, err = env.auth.VerifyRecoveryLogin(ctx, id, old[0])
	require.ErrorIs(t, err, ErrAuth, "old codes are invalidated")

	_, err = env.auth.VerifyRecoveryLogin(ctx, id, fresh[0])
	require.NoError(t, err)
}

func TestStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.register(t, "leo")

	st, err := env.mfa.Status(ctx, id)
	require.NoError(t, err)
	require.False(t, st.Enabled)
	require.Zero(t, st.RecoveryCodesRemaining)

	_, err = env.mfa.Status(ctx, 999999)
	require.ErrorIs(t, err, ErrNotFound)
}

// consumingStore deletes the pending enrollment right after it is read, as a
// competing verify-setup request would.
type consumingStore struct {
	store.Store
}

func (s consumingStore) Enrollments() store.Enrollments {
	return consumingEnrollments{Enrollments: s.Store.Enrollments()}
}

type consumingEnrollments struct {
	store.Enrollments
}

func (e consumingEnrollments) GetEnrollment(ctx context.Context, userID int64) (domain.PendingEnrollment, error) {
	p, err := e.Enrollments.GetEnrollment(ctx, userID)
	if err == nil {
		err = e.Enrollments.DeleteEnrollment(ctx, userID)
	}
	return p, err
}
