package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CryptArtificer/booger/internal/git"
)

// DiffInput is the shared input schema for branch-diff, draft-commit, and
// changelog.
type DiffInput struct {
	Root    string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	BaseRef string `json:"base_ref,omitempty" jsonschema:"base ref to diff against, default main"`
	Staged  bool   `json:"staged,omitempty" jsonschema:"diff the staged (or unstaged, as a fallback) changes instead of a base ref"`
}

func (s *Server) resolveDiff(input DiffInput) (*git.BranchDiff, error) {
	root := s.resolveRoot(input.Root)
	if input.Staged {
		return git.Staged(root)
	}
	baseRef := input.BaseRef
	if baseRef == "" {
		baseRef = "main"
	}
	return git.Branch(root, baseRef)
}

// BranchDiffOutput wraps a git.BranchDiff.
type BranchDiffOutput struct {
	Diff *git.BranchDiff `json:"diff"`
}

func (s *Server) handleBranchDiff(_ context.Context, _ *mcp.CallToolRequest, input DiffInput) (*mcp.CallToolResult, BranchDiffOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("branch-diff", requestID)

	diff, err := s.resolveDiff(input)
	s.logToolDone("branch-diff", requestID, err)
	if err != nil {
		return nil, BranchDiffOutput{}, MapError(err)
	}
	return nil, BranchDiffOutput{Diff: diff}, nil
}

// TextOutput wraps a single rendered text block.
type TextOutput struct {
	Text string `json:"text"`
}

func (s *Server) handleDraftCommit(_ context.Context, _ *mcp.CallToolRequest, input DiffInput) (*mcp.CallToolResult, TextOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("draft-commit", requestID)

	diff, err := s.resolveDiff(input)
	s.logToolDone("draft-commit", requestID, err)
	if err != nil {
		return nil, TextOutput{}, MapError(err)
	}
	return nil, TextOutput{Text: git.DraftCommitMessage(diff)}, nil
}

func (s *Server) handleChangelog(_ context.Context, _ *mcp.CallToolRequest, input DiffInput) (*mcp.CallToolResult, TextOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("changelog", requestID)

	diff, err := s.resolveDiff(input)
	s.logToolDone("changelog", requestID, err)
	if err != nil {
		return nil, TextOutput{}, MapError(err)
	}
	return nil, TextOutput{Text: git.Changelog(diff)}, nil
}
