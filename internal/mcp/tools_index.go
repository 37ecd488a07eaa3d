package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CryptArtificer/booger/internal/embed"
	"github.com/CryptArtificer/booger/internal/index"
	"github.com/CryptArtificer/booger/internal/registry"
	"github.com/CryptArtificer/booger/internal/store"
)

// IndexInput is the input schema for the index tool.
type IndexInput struct {
	Root        string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	NoReconcile bool   `json:"no_reconcile,omitempty" jsonschema:"skip the deletion-on-disappearance pass after the walk"`
}

// IndexOutput mirrors index.Result.
type IndexOutput struct {
	Scanned       int `json:"scanned"`
	Indexed       int `json:"indexed"`
	Unchanged     int `json:"unchanged"`
	Skipped       int `json:"skipped"`
	ChunksCreated int `json:"chunks_created"`
	Reconciled    int `json:"reconciled"`
}

func (s *Server) handleIndex(ctx context.Context, _ *mcp.CallToolRequest, input IndexInput) (*mcp.CallToolResult, IndexOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("index", requestID)

	root := s.resolveRoot(input.Root)
	opts := index.DefaultOptions()
	opts.Reconcile = !input.NoReconcile

	result, err := index.RunWithOptions(ctx, root, s.cfg, opts)
	s.logToolDone("index", requestID, err)
	if err != nil {
		return nil, IndexOutput{}, MapError(err)
	}

	if entry, ok, lookupErr := registryEntryForRoot(s.registry, root); lookupErr == nil && ok {
		_ = s.registry.UpdateStats(entry, registry.IndexStats{
			FileCount:  result.Scanned - result.Skipped,
			ChunkCount: result.ChunksCreated,
		}, time.Now().UTC())
	}

	return nil, IndexOutput{
		Scanned:       result.Scanned,
		Indexed:       result.Indexed,
		Unchanged:     result.Unchanged,
		Skipped:       result.Skipped,
		ChunksCreated: result.ChunksCreated,
		Reconciled:    result.Reconciled,
	}, nil
}

func registryEntryForRoot(mgr *registry.Manager, root string) (string, bool, error) {
	projects, err := mgr.List()
	if err != nil {
		return "", false, err
	}
	for _, p := range projects {
		if p.Entry.Path == root {
			return p.Name, true, nil
		}
	}
	return "", false, nil
}

// StatusInput is the input schema for the status tool.
type StatusInput struct {
	Root string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
}

// StatusOutput reports index health.
type StatusOutput struct {
	Root          string            `json:"root"`
	FileCount     int               `json:"file_count"`
	ChunkCount    int               `json:"chunk_count"`
	EmbeddedCount int               `json:"embedded_count"`
	DBSizeBytes   int64             `json:"db_size_bytes"`
	Kinds         []store.KindCount `json:"kinds,omitempty"`
}

func (s *Server) handleStatus(_ context.Context, _ *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("status", requestID)

	root := s.resolveRoot(input.Root)
	st, err := store.OpenIfExists(s.cfg.StorageDir(root))
	if err != nil {
		s.logToolDone("status", requestID, err)
		return nil, StatusOutput{}, MapError(err)
	}
	if st == nil {
		err := fmt.Errorf("no index found in %s", root)
		s.logToolDone("status", requestID, err)
		return nil, StatusOutput{}, NewInvalidParamsError(err.Error())
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		s.logToolDone("status", requestID, err)
		return nil, StatusOutput{}, MapError(err)
	}
	kinds, err := st.KindStats()
	s.logToolDone("status", requestID, err)
	if err != nil {
		return nil, StatusOutput{}, MapError(err)
	}

	return nil, StatusOutput{
		Root:          root,
		FileCount:     stats.FileCount,
		ChunkCount:    stats.ChunkCount,
		EmbeddedCount: stats.EmbeddedCount,
		DBSizeBytes:   stats.DBSizeBytes,
		Kinds:         kinds,
	}, nil
}

// EmbedInput is the input schema for the embed tool.
type EmbedInput struct {
	Root string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
}

// EmbedOutput mirrors embed.Result.
type EmbedOutput struct {
	TotalChunks   int `json:"total_chunks"`
	EmbeddedAfter int `json:"embedded_after"`
	NewlyEmbedded int `json:"newly_embedded"`
}

func (s *Server) handleEmbed(ctx context.Context, _ *mcp.CallToolRequest, input EmbedInput) (*mcp.CallToolResult, EmbedOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("embed", requestID)

	root := s.resolveRoot(input.Root)
	embedder, err := embed.NewFromConfig(ctx, s.cfg.Embed.Backend)
	if err != nil {
		s.logToolDone("embed", requestID, err)
		return nil, EmbedOutput{}, MapError(err)
	}
	if embedder == nil {
		err := NewInvalidParamsError("no embedding backend configured")
		s.logToolDone("embed", requestID, err)
		return nil, EmbedOutput{}, err
	}

	result, err := embed.Produce(ctx, root, s.cfg, embedder)
	s.logToolDone("embed", requestID, err)
	if err != nil {
		return nil, EmbedOutput{}, MapError(err)
	}

	return nil, EmbedOutput{
		TotalChunks:   result.TotalChunks,
		EmbeddedAfter: result.EmbeddedAfter,
		NewlyEmbedded: result.NewlyEmbedded,
	}, nil
}
