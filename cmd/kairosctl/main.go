// kairosctl - command-line smoke client for a kairos server.
// Spawns the server binary over stdio and issues one MCP request.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/kairos/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("kairosctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	serverPath := fs.String("server", "kairos", "Path to the kairos server binary")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(out)
		return 2
	}

	ctx := context.Background()
	session, err := connect(ctx, *serverPath)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err) //nolint:errcheck
		return 1
	}
	defer session.Close() //nolint:errcheck

	switch rest[0] {
	case "tools":
		return listTools(ctx, session, out)
	case "call":
		if len(rest) < 2 {
			printUsage(out)
			return 2
		}
		return callTool(ctx, session, out, rest[1], parseArgs(rest[2:]))
	default:
		printUsage(out)
		return 2
	}
}

func connect(ctx context.Context, serverPath string) (*mcp.ClientSession, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "kairosctl",
		Version: version.Version,
	}, nil)
	transport := &mcp.CommandTransport{Command: exec.Command(serverPath)}
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", serverPath, err)
	}
	return session, nil
}

func listTools(ctx context.Context, session *mcp.ClientSession, out io.Writer) int {
	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err) //nolint:errcheck
		return 1
	}
	for _, tool := range res.Tools {
		fmt.Fprintf(out, "%s\t%s\n", tool.Name, tool.Description) //nolint:errcheck
	}
	return 0
}

func callTool(ctx context.Context, session *mcp.ClientSession, out io.Writer, name string, args map[string]any) int {
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err) //nolint:errcheck
		return 1
	}
	for _, content := range res.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			fmt.Fprintln(out, tc.Text) //nolint:errcheck
		}
	}
	if res.IsError {
		return 1
	}
	return 0
}

// parseArgs turns trailing key=value pairs into tool arguments. A bare token
// without '=' becomes a key with an empty value.
func parseArgs(pairs []string) map[string]any {
	if len(pairs) == 0 {
		return nil
	}
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		args[key] = value
	}
	return args
}

func printUsage(out io.Writer) {
	usage := `kairosctl - smoke client for a kairos server

Usage:
  kairosctl [--server PATH] tools
  kairosctl [--server PATH] call <tool> [key=value ...]

Examples:
  kairosctl tools
  kairosctl call create_instant label=question-1
  kairosctl call elapsed_since instance_id=<id>`
	fmt.Fprintln(out, usage) //nolint:errcheck
}
