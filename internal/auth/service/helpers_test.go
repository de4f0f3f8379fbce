package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/store"
	"github.com/aussiebroadwan/docit/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/docit/pkg/cryptox"
	"github.com/aussiebroadwan/docit/pkg/jwtx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTSecret = []byte("test-jwt-secret-test-jwt-secret!")

type testEnv struct {
	store    store.Store
	cipher   *cryptox.SecretCipher
	auth     *AuthService
	mfa      *MFAService
	verifier *jwtx.HS256Verifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	c, err := cryptox.NewSecretCipher([]byte(strings.Repeat("k", cryptox.SecretKeySize)))
	require.NoError(t, err)

	signer, err := jwtx.NewSignerHS256(testJWTSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testJWTSecret, DefaultIssuer, 0)
	require.NoError(t, err)

	engine := &TOTPEngine{Issuer: DefaultIssuer}
	return &testEnv{
		store:  st,
		cipher: c,
		auth: &AuthService{
			Store:      st,
			Cipher:     c,
			TOTP:       engine,
			Tokens:     &TokenService{Signer: signer, Issuer: DefaultIssuer, TTL: time.Hour},
			BcryptCost: bcrypt.MinCost,
		},
		mfa: &MFAService{
			Store:  st,
			Cipher: c,
			TOTP:   engine,
		},
		verifier: verifier,
	}
}

func (e *testEnv) register(t *testing.T, username string) int64 {
	t.Helper()
	id, err := e.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "password-" + username,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return id
}

// enableMFA runs the full enrollment and returns the plaintext secret and
// recovery codes.
func (e *testEnv) enableMFA(t *testing.T, userID int64) (string, []string) {
	t.Helper()
	ctx := context.Background()

	enr, err := e.mfa.GenerateSecret(ctx, userID)
	require.NoError(t, err)

	codes, err := e.mfa.VerifyAndActivate(ctx, userID, currentCode(t, enr.SecretKey), "")
	require.NoError(t, err)
	return enr.SecretKey, codes
}

func currentCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now().UTC())
	require.NoError(t, err)
	return code
}

// wrongCode returns a six digit code outside the accepted window.
func wrongCode(t *testing.T, secret string) string {
	t.Helper()
	now := time.Now().UTC()
	valid := map[string]bool{}
	for _, off := range []time.Duration{-60 * time.Second, -30 * time.Second, 0, 30 * time.Second, 60 * time.Second} {
		c, err := totp.GenerateCode(secret, now.Add(off))
		require.NoError(t, err)
		valid[c] = true
	}
	for _, c := range []string{"000000", "111111", "222222", "333333", "444444", "555555", "666666"} {
		if !valid[c] {
			return c
		}
	}
	t.Fatal("no invalid code candidate")
	return ""
}

func timeNow() time.Time { return time.Now().UTC() }

func toLowerNoDash(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", ""))
}
