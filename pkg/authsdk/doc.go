/*
Package authsdk provides a client SDK for the Doc-IT authentication service,
along with the request and response types the service itself uses on the
wire.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (register, login, MFA login, health)
  - Session: operations that need a bearer token (MFA enrollment and management)

Password login:

	client := authsdk.NewSDKClient("http://localhost:3000")

	session, err := client.Login(ctx, "alice", "pw123")
	var mfaErr *authsdk.MFARequiredError
	if errors.As(err, &mfaErr) {
		session, err = client.VerifyMFA(ctx, mfaErr.UserID, otpCode)
	}

Enabling MFA:

	enroll, err := session.GenerateMFASecret(ctx)
	// show enroll.OtpauthURL as a QR code, then confirm with a code
	codes, err := session.VerifyMFASetup(ctx, otpCode, "")
	// codes.RecoveryCodes are shown once

# Error Handling

Non-2xx responses are returned as *APIError carrying the status code and the
server's message. IsStatus is a shortcut for checking the code:

	if authsdk.IsStatus(err, http.StatusUnauthorized) {
		// bad credentials
	}

Request types implement Validate, which returns the same message the server
would reject the request with.
*/
package authsdk
