package httpx

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so the first one listed is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// CORS allows the browser frontend to call the API. An empty list or "*"
// allows any origin; credentials are only allowed for explicit origins.
func CORS(origins []string) Middleware {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         600,
	}

	wildcard := len(origins) == 0
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			wildcard = true
		}
	}
	if wildcard {
		opts.AllowedOrigins = []string{"*"}
	} else {
		opts.AllowedOrigins = origins
		opts.AllowCredentials = true
	}

	return cors.New(opts).Handler
}
