package service

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestTOTPEngine(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 12, 0, 15, 0, time.UTC)
	engine := &TOTPEngine{Now: func() time.Time { return base }}

	enr, err := engine.GenerateSecret("alice@example.com")
	require.NoError(t, err)
	require.Len(t, enr.SecretKey, 32, "20 random bytes in unpadded base32")

	codeAt := func(ts time.Time) string {
		c, err := totp.GenerateCode(enr.SecretKey, ts)
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"current step", codeAt(base), true},
		{"previous step", codeAt(base.Add(-30 * time.Second)), true},
		{"next step", codeAt(base.Add(30 * time.Second)), true},
		{"wrong length", "123", false},
		{"non digits", "abcdef", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := engine.Verify(tt.code, enr.SecretKey)
			require.NoError(t, err)
			require.Equal(t, tt.want, ok)
		})
	}

	t.Run("outside window", func(t *testing.T) {
		old := codeAt(base.Add(-5 * time.Minute))
		if old == codeAt(base) || old == codeAt(base.Add(-30*time.Second)) || old == codeAt(base.Add(30*time.Second)) {
			t.Skip("code collision within window")
		}
		ok, err := engine.Verify(old, enr.SecretKey)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("invalid secret errors", func(t *testing.T) {
		_, err := engine.Verify("123456", "not base32 !!")
		require.Error(t, err)
	})
}

func TestTOTPEngine_ProvisioningURI(t *testing.T) {
	t.Parallel()
	engine := &TOTPEngine{}

	enr, err := engine.GenerateSecret("bob@example.com")
	require.NoError(t, err)

	uri, err := engine.ProvisioningURI("bob@example.com", enr.SecretKey)
	require.NoError(t, err)
	require.Equal(t, enr.OtpauthURL, uri)

	_, err = engine.ProvisioningURI("bob@example.com", "***")
	require.Error(t, err)
}
