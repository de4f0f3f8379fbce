package authsdk

import (
	"context"
	"net/http"
)

// Session holds a bearer token. Tokens are not refreshed; once expired the
// caller must log in again. A Session is safe for concurrent use.
type Session struct {
	client *SDKClient
	token  string
}

// Token returns the bearer token.
func (s *Session) Token() string {
	return s.token
}

// do sends an authenticated request and decodes the JSON response into out.
func (s *Session) do(ctx context.Context, method, path string, payload, out any) error {
	resp, err := s.client.doRequest(ctx, method, path, s.token, payload)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, http.StatusOK)
}
