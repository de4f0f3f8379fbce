package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
	"github.com/aussiebroadwan/docit/internal/auth/store"
	"github.com/aussiebroadwan/docit/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/docit/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, username string) int64 {
	t.Helper()
	id, err := s.Users().CreateUser(context.Background(), domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	return id
}

func TestMigrations_Idempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestMemoryStore(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	id := createUser(t, s, "mem")
	require.Positive(t, id)
}

func TestUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	t.Run("create and fetch", func(t *testing.T) {
		id := createUser(t, s, "alice")
		require.Positive(t, id)

		byID, err := s.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "alice", byID.Username)
		require.Equal(t, "alice@example.com", byID.Email)
		require.False(t, byID.MFAEnabled)
		require.Nil(t, byID.MFASecret)
		require.False(t, byID.CreatedAt.IsZero())

		byName, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, id, byName.ID)
	})

	t.Run("ids increase", func(t *testing.T) {
		a := createUser(t, s, "seq-a")
		b := createUser(t, s, "seq-b")
		require.Greater(t, b, a)
	})

	t.Run("username is case sensitive", func(t *testing.T) {
		_, err := s.Users().GetUserByUsername(ctx, "ALICE")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := s.Users().CreateUser(ctx, domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.Users().CreateUser(ctx, domain.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "x"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, 999999)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUsers_MFAFlagAndSecretMoveTogether(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)
	id := createUser(t, s, "bob")
	now := time.Now().UTC()

	require.NoError(t, s.Users().EnableMFA(ctx, id, "aa:bb", now))
	u, err := s.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.True(t, u.MFAEnabled)
	require.NotNil(t, u.MFASecret)
	require.Equal(t, "aa:bb", *u.MFASecret)
	require.True(t, u.HasMFA())

	require.NoError(t, s.Users().DisableMFA(ctx, id, now))
	u, err = s.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.False(t, u.MFAEnabled)
	require.Nil(t, u.MFASecret)

	require.ErrorIs(t, s.Users().EnableMFA(ctx, 424242, "aa:bb", now), store.ErrNotFound)
	require.ErrorIs(t, s.Users().DisableMFA(ctx, 424242, now), store.ErrNotFound)
}

func TestEnrollments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)
	id := createUser(t, s, "carol")
	now := time.Now().UTC().Truncate(time.Second)

	_, err := s.Enrollments().GetEnrollment(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Enrollments().UpsertEnrollment(ctx, domain.PendingEnrollment{
		UserID: id, SecretEncrypted: "first", ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	}))
	require.NoError(t, s.Enrollments().UpsertEnrollment(ctx, domain.PendingEnrollment{
		UserID: id, SecretEncrypted: "second", ExpiresAt: now.Add(10 * time.Minute), CreatedAt: now,
	}))

	e, err := s.Enrollments().GetEnrollment(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "second", e.SecretEncrypted)
	require.True(t, e.ExpiresAt.Equal(now.Add(10*time.Minute)))
	require.False(t, e.Expired(now))

	n, err := s.Enrollments().DeleteExpiredEnrollments(ctx, now)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = s.Enrollments().DeleteExpiredEnrollments(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Enrollments().GetEnrollment(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEnrollments_Claim(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)
	id := createUser(t, s, "claire")
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.Enrollments().UpsertEnrollment(ctx, domain.PendingEnrollment{
		UserID: id, SecretEncrypted: "current", ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	}))

	require.ErrorIs(t, s.Enrollments().ClaimEnrollment(ctx, id, "stale"), store.ErrNotFound)
	_, err := s.Enrollments().GetEnrollment(ctx, id)
	require.NoError(t, err)

	require.NoError(t, s.Enrollments().ClaimEnrollment(ctx, id, "current"))
	require.ErrorIs(t, s.Enrollments().ClaimEnrollment(ctx, id, "current"), store.ErrNotFound)

	_, err = s.Enrollments().GetEnrollment(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecoveryCodes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)
	id := createUser(t, s, "dave")
	now := time.Now().UTC()

	codes := []domain.RecoveryCode{
		{ID: idx.New().String(), UserID: id, CodeHash: "h1", CreatedAt: now},
		{ID: idx.New().String(), UserID: id, CodeHash: "h2", CreatedAt: now},
	}
	require.NoError(t, s.RecoveryCodes().CreateRecoveryCodes(ctx, codes))

	count, err := s.RecoveryCodes().CountUnusedRecoveryCodes(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	ok, err := s.RecoveryCodes().ConsumeRecoveryCode(ctx, id, "h1", now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.RecoveryCodes().ConsumeRecoveryCode(ctx, id, "h1", now)
	require.NoError(t, err)
	require.False(t, ok, "codes are single use")

	ok, err = s.RecoveryCodes().ConsumeRecoveryCode(ctx, id, "nope", now)
	require.NoError(t, err)
	require.False(t, ok)

	count, err = s.RecoveryCodes().CountUnusedRecoveryCodes(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, s.RecoveryCodes().DeleteAllRecoveryCodes(ctx, id))
	count, err = s.RecoveryCodes().CountUnusedRecoveryCodes(ctx, id)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestWithTx(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)
	id := createUser(t, s, "erin")
	now := time.Now().UTC()

	t.Run("rollback on error", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Users().EnableMFA(ctx, id, "aa:bb", now))
			return store.ErrNotFound
		})
		require.ErrorIs(t, err, store.ErrNotFound)

		u, err := s.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.False(t, u.MFAEnabled)
	})

	t.Run("commit", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().EnableMFA(ctx, id, "aa:bb", now)
		})
		require.NoError(t, err)

		u, err := s.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.True(t, u.MFAEnabled)
	})

	t.Run("nested tx refused", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.Error(t, err)
	})
}

func TestEnrollments_ForeignKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)
	id := createUser(t, s, "frank")
	now := time.Now().UTC()

	require.NoError(t, s.Enrollments().UpsertEnrollment(ctx, domain.PendingEnrollment{
		UserID: id, SecretEncrypted: "x", ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	}))

	// Foreign keys are enforced on every pooled connection.
	err := s.Enrollments().UpsertEnrollment(ctx, domain.PendingEnrollment{
		UserID: id + 1000, SecretEncrypted: "x", ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	})
	require.Error(t, err)
}
