package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/docit/internal/auth/service"
	"github.com/aussiebroadwan/docit/pkg/httpx"
	"github.com/aussiebroadwan/docit/pkg/slogx"
)

// writeServiceError maps a service error onto a status code and writes the
// public message. Internal errors are logged with their cause and answered
// generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAuth):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	} else {
		log.Debug("request rejected", "status", status, "err", err)
	}

	httpx.WriteError(w, status, service.PublicMessage(err))
}

// decodeRequest reads a JSON body into dst and runs its validation. It writes
// a 400 and returns false on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{ Validate() error }) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		slogx.FromContext(r.Context()).Debug("bad request body", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrBadBody.Error())
		return false
	}
	if err := dst.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
