package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CryptArtificer/booger/internal/embed"
	"github.com/CryptArtificer/booger/internal/search"
)

// QueryInput is the shared input schema for search, semantic-search, and
// hybrid-search.
type QueryInput struct {
	Query      string `json:"query" jsonschema:"the search query to execute"`
	Root       string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
	Language   string `json:"language,omitempty" jsonschema:"filter by detected language"`
	PathPrefix string `json:"path_prefix,omitempty" jsonschema:"filter by path prefix"`
	Kind       string `json:"kind,omitempty" jsonschema:"filter by chunk kind"`
	SessionID  string `json:"session_id,omitempty" jsonschema:"session ID scoping focus/visited/annotation boosts"`
}

// HybridSearchInput adds the keyword/semantic blend weight to QueryInput.
type HybridSearchInput struct {
	QueryInput
	Alpha *float64 `json:"alpha,omitempty" jsonschema:"keyword/semantic blend weight, 1=pure keyword, 0=pure semantic, default 0.7"`
}

// WorkspaceSearchInput is QueryInput without a root, since workspace-search
// always fans out across every registered project.
type WorkspaceSearchInput struct {
	Query      string `json:"query" jsonschema:"the search query to execute"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
	Language   string `json:"language,omitempty" jsonschema:"filter by detected language"`
	PathPrefix string `json:"path_prefix,omitempty" jsonschema:"filter by path prefix"`
	Kind       string `json:"kind,omitempty" jsonschema:"filter by chunk kind"`
}

// SearchOutput wraps a list of results, each tagged with its source project
// when the search fans out across the registry.
type SearchOutput struct {
	Results []search.Result `json:"results"`
}

func (q QueryInput) toQuery() search.Query {
	return search.Query{
		Text:       q.Query,
		Language:   q.Language,
		PathPrefix: q.PathPrefix,
		Kind:       q.Kind,
		MaxResults: q.Limit,
		SessionID:  q.SessionID,
	}
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, SearchOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("search", requestID)

	if input.Query == "" {
		err := NewInvalidParamsError("query is required")
		s.logToolDone("search", requestID, err)
		return nil, SearchOutput{}, err
	}

	root := s.resolveRoot(input.Root)
	results, err := search.Keyword(ctx, root, s.cfg, input.toQuery())
	s.logToolDone("search", requestID, err)
	if err != nil {
		return nil, SearchOutput{}, MapError(err)
	}
	return nil, SearchOutput{Results: results}, nil
}

func (s *Server) handleSemanticSearch(ctx context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, SearchOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("semantic-search", requestID)

	if input.Query == "" {
		err := NewInvalidParamsError("query is required")
		s.logToolDone("semantic-search", requestID, err)
		return nil, SearchOutput{}, err
	}

	root := s.resolveRoot(input.Root)
	embedder, err := embed.NewFromConfig(ctx, s.cfg.Embed.Backend)
	if err != nil {
		s.logToolDone("semantic-search", requestID, err)
		return nil, SearchOutput{}, MapError(err)
	}
	if embedder == nil {
		err := NewInvalidParamsError("no embedding backend configured")
		s.logToolDone("semantic-search", requestID, err)
		return nil, SearchOutput{}, err
	}

	results, err := search.Semantic(ctx, root, s.cfg, embedder, input.toQuery())
	s.logToolDone("semantic-search", requestID, err)
	if err != nil {
		return nil, SearchOutput{}, MapError(err)
	}
	return nil, SearchOutput{Results: results}, nil
}

func (s *Server) handleHybridSearch(ctx context.Context, _ *mcp.CallToolRequest, input HybridSearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("hybrid-search", requestID)

	if input.Query == "" {
		err := NewInvalidParamsError("query is required")
		s.logToolDone("hybrid-search", requestID, err)
		return nil, SearchOutput{}, err
	}

	alpha := 0.7
	if input.Alpha != nil {
		alpha = *input.Alpha
	} else if s.cfg.Search.HybridAlpha > 0 {
		alpha = s.cfg.Search.HybridAlpha
	}

	root := s.resolveRoot(input.Root)
	embedder, err := embed.NewFromConfig(ctx, s.cfg.Embed.Backend)
	if err != nil {
		s.logToolDone("hybrid-search", requestID, err)
		return nil, SearchOutput{}, MapError(err)
	}

	results, err := search.Hybrid(ctx, root, s.cfg, embedder, input.toQuery(), alpha)
	s.logToolDone("hybrid-search", requestID, err)
	if err != nil {
		return nil, SearchOutput{}, MapError(err)
	}
	return nil, SearchOutput{Results: results}, nil
}

func (s *Server) handleWorkspaceSearch(ctx context.Context, _ *mcp.CallToolRequest, input WorkspaceSearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("workspace-search", requestID)

	if input.Query == "" {
		err := NewInvalidParamsError("query is required")
		s.logToolDone("workspace-search", requestID, err)
		return nil, SearchOutput{}, err
	}

	registered, err := s.registry.List()
	if err != nil {
		s.logToolDone("workspace-search", requestID, err)
		return nil, SearchOutput{}, MapError(err)
	}
	projects := make([]search.Project, len(registered))
	for i, p := range registered {
		projects[i] = search.Project{Name: p.Name, Root: p.Entry.Path}
	}

	q := QueryInput{
		Query:      input.Query,
		Limit:      input.Limit,
		Language:   input.Language,
		PathPrefix: input.PathPrefix,
		Kind:       input.Kind,
	}
	results, err := search.Workspace(ctx, projects, s.cfg, q.toQuery())
	s.logToolDone("workspace-search", requestID, err)
	if err != nil {
		return nil, SearchOutput{}, MapError(err)
	}
	return nil, SearchOutput{Results: results}, nil
}
