// HTTP server initialization and lifecycle management for the
// streamable-HTTP transport mode.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/kairos/internal/api"
)

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Addr        string
	ReadTimeout time.Duration
	IdleTimeout time.Duration
}

// ShutdownTimeout bounds graceful drain of in-flight requests.
const ShutdownTimeout = 10 * time.Second

// DefaultHTTPConfig returns default HTTP server configuration.
// There is deliberately no write timeout: the MCP handler streams responses
// and a write deadline would cut long-lived sessions off mid-stream.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Addr:        "127.0.0.1:8080",
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

// HTTPServer wraps the net/http server carrying the MCP endpoint.
type HTTPServer struct {
	config HTTPConfig
	log    zerolog.Logger
	http   *http.Server
}

// NewHTTPServer mounts s on a chi router (per api.NewRouter) and wraps it in
// a configured http.Server.
func NewHTTPServer(s *Server, config HTTPConfig, apiKeyHash string, log zerolog.Logger) *HTTPServer {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.MCP()
	}, nil)

	router := api.NewRouter(api.Deps{
		MCP:        handler,
		Log:        log,
		APIKeyHash: apiKeyHash,
	})

	httpServer := &http.Server{
		Addr:        config.Addr,
		Handler:     router,
		ReadTimeout: config.ReadTimeout,
		IdleTimeout: config.IdleTimeout,
	}

	return &HTTPServer{
		config: config,
		log:    log,
		http:   httpServer,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (h *HTTPServer) Start() error {
	h.log.Info().Str("addr", h.http.Addr).Msg("starting HTTP server")
	if err := h.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (h *HTTPServer) Shutdown(ctx context.Context) error {
	h.log.Info().Msg("shutting down HTTP server")
	if err := h.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
