package server

import (
	"context"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// The two advertised resources are static metadata: a working-directory
// placeholder and a fixed memo identifier. Neither has real backing content
// logic; the read handlers exist only because the protocol requires
// resources to be readable.
const (
	resourceCwdURI  = "str:////Users/to/some/path/"
	resourceMemoURI = "memo://insights"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:      resourceCwdURI,
		Name:     "cwd",
		MIMEType: "text/plain",
	}, s.handleCwdResource)

	s.mcp.AddResource(&mcp.Resource{
		URI:      resourceMemoURI,
		Name:     "memo-name",
		MIMEType: "text/plain",
	}, s.handleMemoResource)
}

func (s *Server) handleCwdResource(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "text/plain", Text: wd},
		},
	}, nil
}

func (s *Server) handleMemoResource(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "text/plain", Text: "no insights recorded"},
		},
	}, nil
}
