// kairos - MCP support-tool server for timing answers in interviews and tests.
// Serves over stdio by default; pass --http (or set KAIROS_HTTP_ADDR) for the
// streamable-HTTP transport.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/kairos/internal/domain/audit"
	"github.com/matiasleandrokruk/kairos/internal/infra/config"
	"github.com/matiasleandrokruk/kairos/internal/infra/eventbus"
	"github.com/matiasleandrokruk/kairos/internal/infra/sqlite"
	"github.com/matiasleandrokruk/kairos/internal/server"
	"github.com/matiasleandrokruk/kairos/internal/version"
	pkgauth "github.com/matiasleandrokruk/kairos/pkg/auth"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("kairos", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config", "", "Path to YAML config file")
	httpAddr := fs.String("http", "", "Serve over streamable HTTP at this address instead of stdio")
	hashKey := fs.String("hash-key", "", "Print the bcrypt hash of the given API key and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	if *hashKey != "" {
		hash, err := pkgauth.HashKey(*hashKey)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err) //nolint:errcheck
			return 1
		}
		fmt.Fprintln(out, hash) //nolint:errcheck
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err) //nolint:errcheck
		return 1
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	return serve(cfg)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}

// serve runs the server until interrupted. Logs go to stderr in both modes:
// in stdio mode stdout belongs to the MCP framing.
func serve(cfg config.Config) int {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var bus eventbus.EventBus
	if cfg.DBPath != "" {
		db, err := sqlite.NewDB(cfg.DBPath)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.DBPath).Msg("opening audit database")
			return 1
		}
		defer db.Close() //nolint:errcheck
		if err := sqlite.MigrateUp(db); err != nil {
			log.Error().Err(err).Msg("migrating audit database")
			return 1
		}

		b := eventbus.New()
		go audit.NewService(db, log).Start(ctx, b)
		bus = b
		log.Info().Str("path", cfg.DBPath).Msg("invocation audit trail enabled")
	}

	srv := server.New(server.Options{
		Shell:  cfg.Shell,
		Logger: log,
		Bus:    bus,
	})

	if cfg.HTTPAddr != "" {
		return serveHTTP(ctx, srv, cfg, log)
	}

	log.Info().Msg("serving MCP over stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("stdio session ended")
		return 1
	}
	return 0
}

func serveHTTP(ctx context.Context, srv *server.Server, cfg config.Config, log zerolog.Logger) int {
	httpConfig := server.DefaultHTTPConfig()
	httpConfig.Addr = cfg.HTTPAddr
	h := server.NewHTTPServer(srv, httpConfig, cfg.APIKeyHash, log)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
		defer cancel()
		if err := h.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	if err := h.Start(); err != nil {
		log.Error().Err(err).Msg("http server failed")
		return 1
	}
	return 0
}

func printHelp(out io.Writer) {
	helpText := `kairos - MCP support-tool server

Usage:
  kairos [options]

Options:
  --version         Show version information
  --help            Show this help message
  --config PATH     Load configuration from a YAML file
  --http ADDR       Serve over streamable HTTP at ADDR (default: stdio)
  --hash-key KEY    Print the bcrypt hash of KEY for KAIROS_API_KEY_HASH

Environment:
  KAIROS_SHELL         Shell for the use_cmd tool (default: sh)
  KAIROS_HTTP_ADDR     Same as --http
  KAIROS_DB_PATH       SQLite path enabling the invocation audit trail
  KAIROS_API_KEY_HASH  bcrypt hash of the accepted static API key
  JWT_SECRET           HS256 secret enabling JWT Bearer auth
  JWT_EXPIRY           JWT lifetime in hours (default: 24)

Examples:
  kairos
  kairos --http 127.0.0.1:8080
  kairos --hash-key s3cret`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
