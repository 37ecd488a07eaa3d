package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CryptArtificer/booger/internal/config"
	"github.com/CryptArtificer/booger/internal/registry"
	"github.com/CryptArtificer/booger/pkg/version"
)

// Server is the MCP server bridging AI clients to the engine. It is pinned
// to a single project root, the same way the CLI resolves one root per
// invocation — workspace-wide operations (workspace-search, projects) reach
// across roots via the registry instead.
type Server struct {
	mcp      *mcp.Server
	root     string
	cfg      config.Config
	registry *registry.Manager
	logger   *slog.Logger
}

// NewServer builds an MCP server rooted at root, with cfg as its loaded
// project configuration and registryMgr as the shared cross-project registry.
func NewServer(root string, cfg config.Config, registryMgr *registry.Manager) *Server {
	s := &Server{
		root:     root,
		cfg:      cfg,
		registry: registryMgr,
		logger:   slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "booger",
			Version: version.Short(),
		},
		nil,
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Serve runs the server over stdio until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", slog.String("transport", "stdio"), slog.String("root", s.root))
	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && err != context.Canceled {
		s.logger.Error("mcp server stopped with error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("mcp server stopped")
	return nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search",
		Description: "Keyword (BM25-style FTS) search over the project index.",
	}, s.handleSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "semantic-search",
		Description: "Cosine-similarity search over embedded chunks. Requires an embed backend to be configured.",
	}, s.handleSemanticSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "hybrid-search",
		Description: "Blends keyword and semantic search results by a weighted rank merge.",
	}, s.handleHybridSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "workspace-search",
		Description: "Fans keyword search out across every project registered in the cross-project registry.",
	}, s.handleWorkspaceSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index",
		Description: "Scan, chunk, and persist the project's index.",
	}, s.handleIndex)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "status",
		Description: "Report index health: file, chunk, and embedding counts.",
	}, s.handleStatus)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "embed",
		Description: "Embed every indexed chunk lacking a vector for the configured model.",
	}, s.handleEmbed)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "symbols",
		Description: "List structural symbols (functions, types, etc.) in the index.",
	}, s.handleSymbols)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "grep",
		Description: "Regex search over indexed file contents, with optional surrounding context lines.",
	}, s.handleGrep)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "references",
		Description: "Find references (definitions, calls, imports, type uses) to a symbol.",
	}, s.handleReferences)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "branch-diff",
		Description: "Diff structural symbols between the worktree (or staged changes) and a base ref.",
	}, s.handleBranchDiff)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "draft-commit",
		Description: "Draft a commit message from the structural diff against a base ref or the staged changes.",
	}, s.handleDraftCommit)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "changelog",
		Description: "Render a changelog-style summary of the structural diff against a base ref.",
	}, s.handleChangelog)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "annotate",
		Description: "Record a note against a file, symbol, or line range, optionally scoped to a session.",
	}, s.handleAnnotate)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "annotations",
		Description: "List annotations visible to a session.",
	}, s.handleAnnotations)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "forget",
		Description: "Remove one annotation by id.",
	}, s.handleForget)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "focus",
		Description: "Mark paths as focused for a session, boosting their search rank.",
	}, s.handleFocus)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "visit",
		Description: "Mark paths as visited for a session, penalizing their search rank so a session doesn't keep re-surfacing what it already read.",
	}, s.handleVisit)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "projects",
		Description: "Manage the cross-project registry: list, add, remove, or export registered projects.",
	}, s.handleProjects)

	s.logger.Debug("mcp tools registered", slog.Int("count", 19))
}

func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *Server) resolveRoot(override string) string {
	if override != "" {
		return override
	}
	return s.root
}

func (s *Server) logToolStart(name, requestID string) {
	s.logger.Info(fmt.Sprintf("%s started", name), slog.String("request_id", requestID))
}

func (s *Server) logToolDone(name, requestID string, err error) {
	if err != nil {
		s.logger.Error(fmt.Sprintf("%s failed", name), slog.String("request_id", requestID), slog.String("error", err.Error()))
		return
	}
	s.logger.Info(fmt.Sprintf("%s completed", name), slog.String("request_id", requestID))
}
