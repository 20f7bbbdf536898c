// Package server assembles the kairos MCP server: it owns the instant
// registry and the leaf tool services, registers every tool, prompt, and
// resource on the MCP SDK server, and publishes one audit event per tool
// invocation. Transport, framing, and capability negotiation are the SDK's
// job, not ours.
package server

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/kairos/internal/domain/instant"
	"github.com/matiasleandrokruk/kairos/internal/domain/tool"
	"github.com/matiasleandrokruk/kairos/internal/infra/eventbus"
	"github.com/matiasleandrokruk/kairos/internal/version"
)

const serverName = "kairos"

const instructions = "Support tool for recording moments, ideal for time-limited interviews and tests"

// Options configures a Server. The zero value is usable: real clock, "sh"
// shell, no-op logger, no audit bus.
type Options struct {
	// Shell runs the use_cmd tool as `Shell -c <cmd>`. Empty means "sh".
	Shell string

	// Clock is the time source for the instant registry and the
	// current_time tool. Nil means time.Now.
	Clock func() time.Time

	// Logger receives one debug line per tool invocation.
	Logger zerolog.Logger

	// Bus, when non-nil, receives one audit.TopicToolInvoked event per
	// tool invocation.
	Bus eventbus.EventBus
}

// Server is the assembled MCP server and its owned state.
type Server struct {
	log zerolog.Logger
	bus eventbus.EventBus
	now func() time.Time

	instants *instant.Registry
	clock    *tool.TimeService
	files    *tool.FileService
	shell    *tool.ShellService
	fetch    *tool.FetchService

	mcp *mcp.Server
}

// New builds a Server and registers its full MCP surface.
func New(opts Options) *Server {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	s := &Server{
		log:      opts.Logger,
		bus:      opts.Bus,
		now:      now,
		instants: instant.NewWithClock(now),
		clock:    tool.NewTimeServiceWithClock(now),
		files:    tool.NewFileService(),
		shell:    tool.NewShellService(opts.Shell),
		fetch:    tool.NewFetchService(),
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version.Version,
	}, &mcp.ServerOptions{
		Instructions: instructions,
	})

	s.registerTools()
	s.registerPrompts()
	s.registerResources()

	return s
}

// MCP exposes the underlying SDK server for transport binding (streamable
// HTTP handler, in-memory test transports).
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Instants exposes the registry for inspection in tests.
func (s *Server) Instants() *instant.Registry {
	return s.instants
}

// Run serves MCP over the given transport until the client disconnects or
// ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcp.Run(ctx, transport)
}
