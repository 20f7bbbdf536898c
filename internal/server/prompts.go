package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	promptCountdown  = "countdown"
	promptDefaultDir = "default-directory"
)

const countdownText = "To time an answer, record the moment the question is asked with " +
	"create_instant, then call elapsed_since with the returned instance_id once the user " +
	"has answered to see how long the answer took."

// defaultDirs maps the symbolic directory names the prompt accepts to their
// conventional locations under the user's home directory. Static lookup, not
// computed from the actual filesystem.
var defaultDirs = map[string]string{
	"downloads": "~/Downloads",
	"documents": "~/Documents",
}

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        promptCountdown,
		Description: "How to time an answer using create_instant and elapsed_since",
	}, s.handleCountdownPrompt)

	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        promptDefaultDir,
		Description: "Resolve a system default directory, e.g. documents or downloads",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "name",
				Description: "symbolic directory name: \"downloads\" or \"documents\"",
				Required:    true,
			},
		},
	}, s.handleDefaultDirPrompt)
}

func (s *Server) handleCountdownPrompt(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{Role: "assistant", Content: &mcp.TextContent{Text: countdownText}},
		},
	}, nil
}

func (s *Server) handleDefaultDirPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := req.Params.Arguments["name"]
	path, ok := defaultDirs[name]
	if !ok {
		return nil, fmt.Errorf("unknown directory name %q: expected \"downloads\" or \"documents\"", name)
	}
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{Role: "assistant", Content: &mcp.TextContent{Text: path}},
		},
	}, nil
}
