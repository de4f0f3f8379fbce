package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	return Config{
		JWTSecret:            strings.Repeat("j", 32),
		MFAEncryptionKey:     strings.Repeat("m", 32),
		Issuer:               "Doc-IT",
		TokenTTL:             time.Hour,
		EnrollmentTTL:        10 * time.Minute,
		RecoveryCodeCount:    10,
		BcryptCost:           4,
		DatabaseDriver:       DriverSQLite,
		DatabaseFile:         filepath.Join(t.TempDir(), "auth.db"),
		CORSOrigins:          []string{"*"},
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 3000,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestNew_WiresRoutes(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, cfg.Validate())

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"username":"alice","password":"pw123","email":"alice@x.com"}`))
	application.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestNew_RejectsBadKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.MFAEncryptionKey = "short"

	_, err := New(cfg)
	require.Error(t, err)
}
