//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init --dir ../../.. --generalInfo internal/auth/http/router.go --output ../../../api/auth --outputTypes go --parseInternal

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/service"
	"github.com/aussiebroadwan/docit/internal/auth/store"
	"github.com/aussiebroadwan/docit/pkg/httpx"
	"github.com/aussiebroadwan/docit/pkg/jwtx"
	"github.com/aussiebroadwan/docit/pkg/slogx"

	_ "github.com/aussiebroadwan/docit/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	MFAService  *service.MFAService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Logging wraps CORS so preflight requests are logged too.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMFA()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("GET /api-docs", http.RedirectHandler("/swagger/index.html", http.StatusMovedPermanently))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Doc-IT Authentication API
//	@version		1.0.0
//	@description	Account registration, password login and TOTP multi-factor authentication for Doc-IT.
//	@description
//	@description				Tokens are HS256 signed JWTs sent as "Authorization: Bearer {token}".
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/docit
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.HandleFunc("POST /auth/register", h.HandleRegister)
	r.Mux.HandleFunc("POST /auth/login", h.HandleLogin)
	r.Mux.HandleFunc("POST /auth/mfa/verify-mfa", h.HandleVerifyMFA)
	r.Mux.HandleFunc("POST /auth/mfa/verify-recovery", h.HandleVerifyRecovery)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.AuthnMiddleware(r.verifier))
	}

	r.Mux.Handle("POST /auth/mfa/generate-secret", secured(h.HandleGenerateSecret))
	r.Mux.Handle("POST /auth/mfa/verify-setup", secured(h.HandleVerifySetup))
	r.Mux.Handle("GET /auth/mfa/status-mfa", secured(h.HandleStatus))
	r.Mux.Handle("POST /auth/mfa/disable", secured(h.HandleDisable))
	r.Mux.Handle("POST /auth/mfa/recovery-codes", secured(h.HandleRecoveryCodes))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /VerifyHealth", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
