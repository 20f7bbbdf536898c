// Route registration and go-chi router setup for the HTTP transport mode.
// The MCP streamable-HTTP handler is mounted at /mcp, optionally behind the
// Bearer credential middleware; /healthz and /version stay public.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	apmiddleware "github.com/matiasleandrokruk/kairos/internal/api/middleware"
	"github.com/matiasleandrokruk/kairos/internal/version"
	pkgauth "github.com/matiasleandrokruk/kairos/pkg/auth"
)

// Deps carries what the router needs; api stays import-cycle-free from the
// server package by taking the MCP endpoint as a plain http.Handler.
type Deps struct {
	// MCP is the streamable-HTTP MCP handler served at /mcp.
	MCP http.Handler

	// Log receives one line per request.
	Log zerolog.Logger

	// APIKeyHash is the bcrypt hash of the accepted static API key; empty
	// disables API-key auth. Auth is enforced on /mcp when this or a JWT
	// secret is configured, and skipped entirely otherwise.
	APIKeyHash string
}

// NewRouter creates and configures a chi router with all routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(apmiddleware.RequestLog(deps.Log))
	r.Use(chimiddleware.Recoverer)

	// Health check — unauthenticated, used by load balancers and health probes
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(version.String())) //nolint:errcheck
	})

	// MCP endpoint — Bearer credential required when any mechanism is configured
	r.Group(func(r chi.Router) {
		if deps.APIKeyHash != "" || pkgauth.JWTConfigured() {
			r.Use(apmiddleware.Auth(deps.APIKeyHash))
		}
		r.Handle("/mcp", deps.MCP)
	})

	return r
}
