package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CryptArtificer/booger/internal/registry"
)

// ProjectsInput is the input schema for the projects tool, dispatching on
// Action the way a single CLI command tree with subcommands would.
type ProjectsInput struct {
	Action string `json:"action" jsonschema:"one of: list, add, remove, export"`
	Name   string `json:"name,omitempty" jsonschema:"project name, required for add and remove"`
	Path   string `json:"path,omitempty" jsonschema:"project root path, required for add"`
	Format string `json:"format,omitempty" jsonschema:"export format: json (default) or yaml"`
}

// ProjectsOutput reports the registry contents or an export blob.
type ProjectsOutput struct {
	Projects []registry.Project `json:"projects,omitempty"`
	Export   string             `json:"export,omitempty"`
}

func (s *Server) handleProjects(_ context.Context, _ *mcp.CallToolRequest, input ProjectsInput) (*mcp.CallToolResult, ProjectsOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("projects", requestID)

	var err error
	var out ProjectsOutput

	switch input.Action {
	case "", "list":
		out.Projects, err = s.registry.List()
	case "add":
		if input.Name == "" || input.Path == "" {
			err = NewInvalidParamsError("name and path are required for action=add")
			break
		}
		err = s.registry.Add(input.Name, input.Path)
	case "remove":
		if input.Name == "" {
			err = NewInvalidParamsError("name is required for action=remove")
			break
		}
		err = s.registry.Remove(input.Name)
	case "export":
		if input.Format == "yaml" {
			var blob []byte
			blob, err = s.registry.ExportYAML()
			out.Export = string(blob)
		} else {
			out.Projects, err = s.registry.List()
		}
	default:
		err = NewInvalidParamsError("unknown action " + input.Action)
	}

	s.logToolDone("projects", requestID, err)
	if err != nil {
		if mcpErr, ok := err.(*MCPError); ok {
			return nil, ProjectsOutput{}, mcpErr
		}
		return nil, ProjectsOutput{}, MapError(err)
	}
	return nil, out, nil
}
