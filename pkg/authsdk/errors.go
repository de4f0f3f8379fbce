package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Request validation errors. The message of each is what the server sends
// back in the error body.
var (
	ErrRegisterFieldsRequired       = errors.New("username, password and email are required")
	ErrLoginFieldsRequired          = errors.New("username and password are required")
	ErrVerifyMFAFieldsRequired      = errors.New("userId and mfaCode are required")
	ErrVerifyRecoveryFieldsRequired = errors.New("userId and recoveryCode are required")
	ErrSetupTokenRequired           = errors.New("token is required")
	ErrMFACodeRequired              = errors.New("mfaCode is required")
)

// ErrMFARequired is returned by SDKClient.Login when the account has MFA
// enabled. Use errors.As with *MFARequiredError to get the user id.
var ErrMFARequired = errors.New("mfa required")

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// MFARequiredError carries the challenge returned by a password login for an
// account with MFA enabled.
type MFARequiredError struct {
	UserID int64
}

// Error implements the error interface.
func (e *MFARequiredError) Error() string {
	return fmt.Sprintf("mfa required for user %d", e.UserID)
}

// Is reports whether target is ErrMFARequired.
func (e *MFARequiredError) Is(target error) bool { return target == ErrMFARequired }

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
