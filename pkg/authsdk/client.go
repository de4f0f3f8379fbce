package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Doc-IT authentication service.
// It provides access to unauthenticated operations and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns its id.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.postJSON(ctx, "/auth/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login performs a password login. For accounts with MFA enabled it returns
// an *MFARequiredError (matching ErrMFARequired) instead of a session.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	var out LoginResponse
	err := c.postJSON(ctx, "/auth/login", LoginRequest{Username: username, Password: password}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	if out.MFARequired {
		return nil, &MFARequiredError{UserID: out.UserID}
	}
	return c.NewSessionFromToken(out.Token), nil
}

// VerifyMFA completes a login challenge with a TOTP code.
func (c *SDKClient) VerifyMFA(ctx context.Context, userID int64, code string) (*Session, error) {
	var out TokenResponse
	req := VerifyMFARequest{UserID: UserID(userID), MFACode: code}
	if err := c.postJSON(ctx, "/auth/mfa/verify-mfa", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSessionFromToken(out.Token), nil
}

// VerifyRecovery completes a login challenge with a single-use recovery code.
func (c *SDKClient) VerifyRecovery(ctx context.Context, userID int64, code string) (*Session, error) {
	var out TokenResponse
	req := VerifyRecoveryRequest{UserID: UserID(userID), RecoveryCode: code}
	if err := c.postJSON(ctx, "/auth/mfa/verify-recovery", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSessionFromToken(out.Token), nil
}

// NewSessionFromToken wraps an existing bearer token.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}
