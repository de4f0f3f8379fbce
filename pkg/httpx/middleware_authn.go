package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/docit/pkg/jwtx"
	"github.com/aussiebroadwan/docit/pkg/slogx"
)

// Public messages for the two bearer failure modes.
const (
	MsgTokenMissing = "token not provided"
	MsgTokenInvalid = "invalid token"
)

// AuthnMiddleware admits requests carrying a valid bearer token. A missing
// token is answered with 401. A credential that is present but is not a
// verifiable bearer token is answered with 403.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			scheme, raw, ok := credentials(r.Header.Get("Authorization"))
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="docit"`)
				WriteError(w, http.StatusUnauthorized, MsgTokenMissing)
				return
			}
			if !strings.EqualFold(scheme, "Bearer") {
				log.Warn("unsupported authorization scheme", "scheme", scheme)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteError(w, http.StatusForbidden, MsgTokenInvalid)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteError(w, http.StatusForbidden, MsgTokenInvalid)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.With(ctx, "user_id", claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// credentials splits an Authorization value into scheme and credential.
// ok is false when no credential follows the scheme.
func credentials(header string) (scheme, credential string, ok bool) {
	scheme, credential, ok = strings.Cut(strings.TrimSpace(header), " ")
	credential = strings.TrimSpace(credential)
	return scheme, credential, ok && credential != ""
}
