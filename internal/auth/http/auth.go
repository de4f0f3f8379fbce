package http

import (
	"net/http"

	"github.com/aussiebroadwan/docit/internal/auth/service"
	"github.com/aussiebroadwan/docit/pkg/authsdk"
	"github.com/aussiebroadwan/docit/pkg/httpx"
)

// AuthHandler serves the public login endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register a user
//	@Description	Creates an account. The caller must log in afterwards to obtain a token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest		true	"Account details"
//	@Success		201		{object}	authsdk.RegisterResponse	"User created"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Missing field"
//	@Failure		409		{object}	authsdk.ErrorResponse		"Username or email already in use"
//	@Failure		500		{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	id, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.RegisterResponse{
		Message: "user created",
		UserID:  id,
	})
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Log in with a password
//	@Description	Returns a token, or {mfaRequired, userId} when the account has MFA enabled.
//	@Description	In the latter case no token is issued until /auth/mfa/verify-mfa succeeds.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"Token or MFA challenge"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing field"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid credentials"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if res.MFARequired {
		httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{MFARequired: true, UserID: res.UserID})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{Token: res.Token})
}

// HandleVerifyMFA handles POST /auth/mfa/verify-mfa
//
//	@Summary		Complete an MFA login
//	@Description	Exchanges the userId from the login challenge and a current TOTP code for a token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyMFARequest	true	"Challenge response"
//	@Success		200		{object}	authsdk.TokenResponse		"Token"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Missing field"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Invalid MFA code or MFA not enabled"
//	@Failure		500		{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/auth/mfa/verify-mfa [post].
func (h *AuthHandler) HandleVerifyMFA(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyMFARequest
	if !decodeRequest(w, r, &req) {
		return
	}

	token, err := h.AuthService.VerifyMFALogin(r.Context(), int64(req.UserID), req.MFACode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{Token: token})
}

// HandleVerifyRecovery handles POST /auth/mfa/verify-recovery
//
//	@Summary		Complete an MFA login with a recovery code
//	@Description	Burns one recovery code in place of a TOTP code. Each code works once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyRecoveryRequest	true	"Challenge response"
//	@Success		200		{object}	authsdk.TokenResponse			"Token"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Missing field"
//	@Failure		401		{object}	authsdk.ErrorResponse			"Invalid recovery code or MFA not enabled"
//	@Failure		500		{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/auth/mfa/verify-recovery [post].
func (h *AuthHandler) HandleVerifyRecovery(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyRecoveryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	token, err := h.AuthService.VerifyRecoveryLogin(r.Context(), int64(req.UserID), req.RecoveryCode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{Token: token})
}
