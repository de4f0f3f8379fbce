package http

import (
	"net/http"

	"github.com/aussiebroadwan/docit/internal/auth/service"
	"github.com/aussiebroadwan/docit/pkg/authsdk"
	"github.com/aussiebroadwan/docit/pkg/httpx"
)

// MFAHandler handles the bearer-protected MFA management endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleGenerateSecret handles POST /auth/mfa/generate-secret
//
//	@Summary		Start TOTP enrollment
//	@Description	Generates a TOTP secret for the authenticated user. The secret is held server side
//	@Description	until confirmed with /auth/mfa/verify-setup or until it expires. Calling again replaces it.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.GenerateSecretResponse	"Secret and otpauth URL"
//	@Failure		400	{object}	authsdk.ErrorResponse			"MFA already enabled"
//	@Failure		401	{object}	authsdk.ErrorResponse			"Token not provided"
//	@Failure		403	{object}	authsdk.ErrorResponse			"Invalid token"
//	@Failure		404	{object}	authsdk.ErrorResponse			"User not found"
//	@Failure		500	{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/auth/mfa/generate-secret [post].
func (h *MFAHandler) HandleGenerateSecret(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, httpx.MsgTokenInvalid)
		return
	}

	enrollment, err := h.MFAService.GenerateSecret(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.GenerateSecretResponse{
		OtpauthURL: enrollment.OtpauthURL,
		SecretKey:  enrollment.SecretKey,
	})
}

// HandleVerifySetup handles POST /auth/mfa/verify-setup
//
//	@Summary		Confirm TOTP enrollment
//	@Description	Verifies a code against the pending secret, enables MFA and returns recovery codes.
//	@Description	The recovery codes are shown only in this response.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifySetupRequest		true	"Current code"
//	@Success		200		{object}	authsdk.RecoveryCodesResponse	"MFA enabled"
//	@Failure		400		{object}	authsdk.ErrorResponse			"Invalid code or no pending enrollment"
//	@Failure		401		{object}	authsdk.ErrorResponse			"Token not provided"
//	@Failure		403		{object}	authsdk.ErrorResponse			"Invalid token"
//	@Failure		500		{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/auth/mfa/verify-setup [post].
func (h *MFAHandler) HandleVerifySetup(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, httpx.MsgTokenInvalid)
		return
	}

	var req authsdk.VerifySetupRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	codes, err := h.MFAService.VerifyAndActivate(r.Context(), userID, req.Token, req.Secret)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.RecoveryCodesResponse{
		Message:       "MFA enabled",
		RecoveryCodes: codes,
	})
}

// HandleStatus handles GET /auth/mfa/status-mfa
//
//	@Summary		MFA status
//	@Description	Reports whether MFA is enabled for the authenticated user.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MFAStatusResponse	"MFA status"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Token not provided"
//	@Failure		403	{object}	authsdk.ErrorResponse		"Invalid token"
//	@Failure		404	{object}	authsdk.ErrorResponse		"User not found"
//	@Router			/auth/mfa/status-mfa [get].
func (h *MFAHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, httpx.MsgTokenInvalid)
		return
	}

	st, err := h.MFAService.Status(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MFAStatusResponse{
		Enabled:                st.Enabled,
		RecoveryCodesRemaining: st.RecoveryCodesRemaining,
	})
}

// HandleDisable handles POST /auth/mfa/disable
//
//	@Summary		Disable MFA
//	@Description	Turns MFA off after checking a current TOTP code. Recovery codes are discarded.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.MFACodeRequest	true	"Current code"
//	@Success		200		{object}	authsdk.MessageResponse	"MFA disabled"
//	@Failure		400		{object}	authsdk.ErrorResponse	"MFA not enabled"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid MFA code or token not provided"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Invalid token"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/auth/mfa/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, httpx.MsgTokenInvalid)
		return
	}

	var req authsdk.MFACodeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.MFAService.Disable(r.Context(), userID, req.MFACode); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "MFA disabled"})
}

// HandleRecoveryCodes handles POST /auth/mfa/recovery-codes
//
//	@Summary		Regenerate recovery codes
//	@Description	Replaces every recovery code after checking a current TOTP code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.MFACodeRequest			true	"Current code"
//	@Success		200		{object}	authsdk.RecoveryCodesResponse	"New recovery codes"
//	@Failure		400		{object}	authsdk.ErrorResponse			"MFA not enabled"
//	@Failure		401		{object}	authsdk.ErrorResponse			"Invalid MFA code or token not provided"
//	@Failure		403		{object}	authsdk.ErrorResponse			"Invalid token"
//	@Failure		500		{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/auth/mfa/recovery-codes [post].
func (h *MFAHandler) HandleRecoveryCodes(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, httpx.MsgTokenInvalid)
		return
	}

	var req authsdk.MFACodeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	codes, err := h.MFAService.RegenerateRecoveryCodes(r.Context(), userID, req.MFACode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.RecoveryCodesResponse{
		Message:       "recovery codes regenerated",
		RecoveryCodes: codes,
	})
}
