package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func TestHousekeeping_SweepsExpiredEnrollments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	stale := env.register(t, "stale")
	fresh := env.register(t, "fresh")

	env.mfa.Now = func() time.Time { return time.Now().Add(-time.Hour) }
	_, err := env.mfa.GenerateSecret(ctx, stale)
	require.NoError(t, err)

	env.mfa.Now = nil
	_, err = env.mfa.GenerateSecret(ctx, fresh)
	require.NoError(t, err)

	hk := NewHousekeepingService(env.store, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	require.EqualValues(t, 1, hk.Sweep(ctx))

	_, err = env.store.Enrollments().GetEnrollment(ctx, stale)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = env.store.Enrollments().GetEnrollment(ctx, fresh)
	require.NoError(t, err)
}

func TestHousekeeping_StartStop(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	hk := NewHousekeepingService(env.store, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
