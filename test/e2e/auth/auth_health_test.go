//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/docit/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies the liveness and readiness probes.
func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)

	resp, err := http.Get(baseURL + "/VerifyHealth")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
