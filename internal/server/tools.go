package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/kairos/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/kairos/internal/domain/audit"
	"github.com/matiasleandrokruk/kairos/internal/domain/instant"
	"github.com/matiasleandrokruk/kairos/internal/domain/tool"
)

const (
	toolCurrentTime   = "current_time"
	toolCreateInstant = "create_instant"
	toolElapsedSince  = "elapsed_since"
	toolReadFile      = "read_file"
	toolCreateFile    = "create_file"
	toolUseCmd        = "use_cmd"
	toolGetURL        = "get_url"
)

// localActor is recorded for invocations with no authenticated identity
// (stdio transport, or HTTP with auth disabled).
const localActor = "local"

type currentTimeArgs struct{}

type createInstantArgs struct {
	Label string `json:"label" jsonschema:"free-form label describing the recorded moment"`
}

type elapsedSinceArgs struct {
	InstanceID string `json:"instance_id" jsonschema:"identifier returned by create_instant"`
}

type readFileArgs struct {
	FilePath string `json:"file_path" jsonschema:"absolute path of the file to read"`
}

type createFileArgs struct {
	FilePath string `json:"file_path" jsonschema:"absolute path of the file to create"`
	Context  string `json:"context" jsonschema:"text content to write into the file"`
}

type cmdArgs struct {
	Cmd string `json:"cmd" jsonschema:"shell command line to execute"`
}

type getURLArgs struct {
	URL string `json:"url" jsonschema:"URL to fetch with an HTTP GET"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolCurrentTime,
		Description: "Get the current time, formatted as 'YYYY-MM-DD HH:MM:SS'",
	}, s.handleCurrentTime)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolCreateInstant,
		Description: "Record a labeled point in time and return its instance_id",
	}, s.handleCreateInstant)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolElapsedSince,
		Description: "Compute the time elapsed since a recorded instant, as 'mm:ss'. Takes an instance_id. Useful to check whether an answer took too long.",
	}, s.handleElapsedSince)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolReadFile,
		Description: "Read the contents of a file by absolute path",
	}, s.handleReadFile)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolCreateFile,
		Description: "Create a file at an absolute path and write content into it",
	}, s.handleCreateFile)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolUseCmd,
		Description: "Execute a command in the server's shell and return its output",
	}, s.handleUseCmd)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolGetURL,
		Description: "Fetch a URL with an HTTP GET and return the response body",
	}, s.handleGetURL)
}

func (s *Server) handleCurrentTime(ctx context.Context, _ *mcp.CallToolRequest, args currentTimeArgs) (*mcp.CallToolResult, any, error) {
	started := s.now()
	out := s.clock.CurrentTime()
	s.record(ctx, toolCurrentTime, args, nil, started)
	return textResult(out), nil, nil
}

func (s *Server) handleCreateInstant(ctx context.Context, _ *mcp.CallToolRequest, args createInstantArgs) (*mcp.CallToolResult, any, error) {
	started := s.now()
	id := s.instants.Create(args.Label)
	s.record(ctx, toolCreateInstant, args, nil, started)
	return textResult(id), nil, nil
}

func (s *Server) handleElapsedSince(ctx context.Context, _ *mcp.CallToolRequest, args elapsedSinceArgs) (*mcp.CallToolResult, any, error) {
	started := s.now()
	label, elapsed, err := s.instants.Elapsed(args.InstanceID)
	if err != nil {
		err = classifyInstantErr(err)
		s.record(ctx, toolElapsedSince, args, err, started)
		return errorResult(err), nil, nil
	}
	s.record(ctx, toolElapsedSince, args, nil, started)
	return textResult(
		fmt.Sprintf("instance label: %s", label),
		fmt.Sprintf("time has elapsed %s", instant.FormatMMSS(elapsed)),
	), nil, nil
}

func (s *Server) handleReadFile(ctx context.Context, _ *mcp.CallToolRequest, args readFileArgs) (*mcp.CallToolResult, any, error) {
	started := s.now()
	text, err := s.files.Read(args.FilePath)
	s.record(ctx, toolReadFile, args, err, started)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(text), nil, nil
}

func (s *Server) handleCreateFile(ctx context.Context, _ *mcp.CallToolRequest, args createFileArgs) (*mcp.CallToolResult, any, error) {
	started := s.now()
	err := s.files.Create(args.FilePath, args.Context)
	s.record(ctx, toolCreateFile, args, err, started)
	if err != nil {
		return errorResult(err), nil, nil
	}
	// Empty success: nothing useful to say beyond "it worked".
	return &mcp.CallToolResult{}, nil, nil
}

func (s *Server) handleUseCmd(ctx context.Context, _ *mcp.CallToolRequest, args cmdArgs) (*mcp.CallToolResult, any, error) {
	started := s.now()
	out, err := s.shell.Run(ctx, args.Cmd)
	s.record(ctx, toolUseCmd, args, err, started)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(out), nil, nil
}

func (s *Server) handleGetURL(ctx context.Context, _ *mcp.CallToolRequest, args getURLArgs) (*mcp.CallToolResult, any, error) {
	started := s.now()
	body, err := s.fetch.Get(ctx, args.URL)
	s.record(ctx, toolGetURL, args, err, started)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(body), nil, nil
}

// classifyInstantErr maps registry sentinel errors into the closed tool error
// taxonomy. An unknown identifier is the caller's mistake (not_found);
// anything else out of the registry would be unexpected (internal).
func classifyInstantErr(err error) error {
	kind := tool.KindInternal
	if errors.Is(err, instant.ErrInstantNotFound) {
		kind = tool.KindNotFound
	}
	return &tool.Error{Kind: kind, Message: err.Error(), Err: err}
}

// textResult builds a success result with one text content per line.
func textResult(lines ...string) *mcp.CallToolResult {
	contents := make([]mcp.Content, 0, len(lines))
	for _, line := range lines {
		contents = append(contents, &mcp.TextContent{Text: line})
	}
	return &mcp.CallToolResult{Content: contents}
}

// errorResult turns a tool failure into a structured in-band error response.
// The text leads with the error kind so an automated caller can branch on it,
// followed by the human-readable message (which names the offending input).
func errorResult(err error) *mcp.CallToolResult {
	text := fmt.Sprintf("%s: %s", tool.KindOf(err), err.Error())
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// record logs one tool invocation and publishes it to the audit bus.
// Audit is an observer: failures to publish can only drop the event, never
// affect the tool result.
func (s *Server) record(ctx context.Context, toolName string, args any, callErr error, started time.Time) {
	params, err := json.Marshal(args)
	if err != nil {
		params = nil
	}
	actor := ctxkeys.String(ctx, ctxkeys.ActorID, localActor)
	inv := audit.NewInvocation(toolName, actor, params, callErr, started, s.now)

	evt := s.log.Debug().
		Str("tool", toolName).
		Str("actor", actor).
		Str("outcome", string(inv.Outcome)).
		Int64("duration_ms", inv.DurationMS)
	if callErr != nil {
		evt = evt.Str("detail", callErr.Error())
	}
	evt.Msg("tool invoked")

	if s.bus != nil {
		s.bus.Publish(audit.TopicToolInvoked, inv)
	}
}
