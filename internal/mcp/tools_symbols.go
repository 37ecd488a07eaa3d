package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CryptArtificer/booger/internal/search"
	"github.com/CryptArtificer/booger/internal/store"
)

// SymbolsInput is the input schema for the symbols tool.
type SymbolsInput struct {
	Root       string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	PathPrefix string `json:"path_prefix,omitempty" jsonschema:"filter by path prefix"`
	Kind       string `json:"kind,omitempty" jsonschema:"filter by chunk kind"`
}

// SymbolsOutput wraps a list of structural chunks.
type SymbolsOutput struct {
	Symbols []store.Chunk `json:"symbols"`
}

func (s *Server) handleSymbols(_ context.Context, _ *mcp.CallToolRequest, input SymbolsInput) (*mcp.CallToolResult, SymbolsOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("symbols", requestID)

	root := s.resolveRoot(input.Root)
	symbols, err := search.ListSymbols(root, s.cfg, input.PathPrefix, input.Kind)
	s.logToolDone("symbols", requestID, err)
	if err != nil {
		return nil, SymbolsOutput{}, MapError(err)
	}
	return nil, SymbolsOutput{Symbols: symbols}, nil
}

// GrepInput is the input schema for the grep tool.
type GrepInput struct {
	Pattern      string `json:"pattern" jsonschema:"regular expression to search for"`
	Root         string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	PathPrefix   string `json:"path_prefix,omitempty" jsonschema:"filter by path prefix"`
	Kind         string `json:"kind,omitempty" jsonschema:"filter by chunk kind"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of matches, default 100"`
	ContextLines int    `json:"context_lines,omitempty" jsonschema:"lines of context before and after each match"`
}

// GrepOutput mirrors search.GrepResult.
type GrepOutput struct {
	Matches       []search.GrepMatch `json:"matches"`
	MatchingFiles int                `json:"matching_files"`
}

func (s *Server) handleGrep(_ context.Context, _ *mcp.CallToolRequest, input GrepInput) (*mcp.CallToolResult, GrepOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("grep", requestID)

	if input.Pattern == "" {
		err := NewInvalidParamsError("pattern is required")
		s.logToolDone("grep", requestID, err)
		return nil, GrepOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 100
	}

	root := s.resolveRoot(input.Root)
	result, err := search.Grep(root, s.cfg, input.Pattern, input.PathPrefix, input.Kind, limit, input.ContextLines)
	s.logToolDone("grep", requestID, err)
	if err != nil {
		return nil, GrepOutput{}, MapError(err)
	}
	return nil, GrepOutput{Matches: result.Matches, MatchingFiles: result.MatchingFiles}, nil
}

// ReferencesInput is the input schema for the references tool.
type ReferencesInput struct {
	Symbol     string `json:"symbol" jsonschema:"symbol name to find references for"`
	Root       string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	PathPrefix string `json:"path_prefix,omitempty" jsonschema:"filter by path prefix"`
}

// ReferencesOutput wraps a list of references.
type ReferencesOutput struct {
	References []search.Reference `json:"references"`
}

func (s *Server) handleReferences(_ context.Context, _ *mcp.CallToolRequest, input ReferencesInput) (*mcp.CallToolResult, ReferencesOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("references", requestID)

	if input.Symbol == "" {
		err := NewInvalidParamsError("symbol is required")
		s.logToolDone("references", requestID, err)
		return nil, ReferencesOutput{}, err
	}

	root := s.resolveRoot(input.Root)
	refs, err := search.References(root, s.cfg, input.Symbol, input.PathPrefix)
	s.logToolDone("references", requestID, err)
	if err != nil {
		return nil, ReferencesOutput{}, MapError(err)
	}
	return nil, ReferencesOutput{References: refs}, nil
}
