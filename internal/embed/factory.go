package embed

import (
	"context"
	"os"

	"github.com/CryptArtificer/booger/internal/config"
	boogererrors "github.com/CryptArtificer/booger/internal/errors"
)

// NewFromConfig builds the Embedder named by cfg.Embed.Backend.Type.
// "none" (or an empty type) returns (nil, nil): callers that only need
// keyword search never dial an embedding backend.
func NewFromConfig(ctx context.Context, cfg config.EmbedBackend) (Embedder, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "ollama":
		url := cfg.URL
		if url == "" {
			url = "http://localhost:11434"
		}
		model := cfg.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		return NewOllamaEmbedder(ctx, url, model)
	case "openai":
		url := cfg.URL
		if url == "" {
			url = "https://api.openai.com"
		}
		model := cfg.Model
		if model == "" {
			model = "text-embedding-3-small"
		}
		return NewOpenAIEmbedder(ctx, url, model, os.Getenv("OPENAI_API_KEY"))
	default:
		return nil, boogererrors.InvalidQuery("unknown embed backend type: "+cfg.Type, nil)
	}
}
