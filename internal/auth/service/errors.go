package service

import (
	"errors"
)

// Error kinds. Handlers map these onto HTTP status codes with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Error pairs an error kind with a message that is safe to show clients.
// The wrapped cause, if any, is for logs only.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// PublicMessage returns the client-facing message for err. Errors that do
// not carry one are reported generically.
func PublicMessage(err error) string {
	var se *Error
	if errors.As(err, &se) && !errors.Is(se.Kind, ErrInternal) {
		return se.Message
	}
	return "internal server error"
}

func validationError(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }
func authError(msg string) error       { return &Error{Kind: ErrAuth, Message: msg} }
func notFoundError(msg string) error   { return &Error{Kind: ErrNotFound, Message: msg} }
func conflictError(msg string, cause error) error {
	return &Error{Kind: ErrConflict, Message: msg, Cause: cause}
}
func internalError(msg string, cause error) error {
	return &Error{Kind: ErrInternal, Message: msg, Cause: cause}
}

// Messages shared between flows.
const (
	msgInvalidCredentials = "invalid credentials"
	msgInvalidMFALogin    = "invalid MFA code or MFA not enabled"
	msgInvalidRecovery    = "invalid recovery code or MFA not enabled"
	msgUserNotFound       = "user not found"
	msgInvalidCode        = "invalid code"
	msgInvalidMFACode     = "invalid MFA code"
	msgMFAAlreadyEnabled  = "MFA already enabled"
	msgMFANotEnabled      = "MFA is not enabled"
	msgNoPendingMFA       = "no pending MFA enrollment"
)
