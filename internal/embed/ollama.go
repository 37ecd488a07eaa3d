package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	boogererrors "github.com/CryptArtificer/booger/internal/errors"
)

// OllamaEmbedder calls Ollama's single-prompt embedding endpoint. Grounded
// on original_source/src/embed/ollama.rs: POST <base>/api/embeddings with
// {"model","prompt"}, response {"embedding":[...]}.
type OllamaEmbedder struct {
	baseURL string
	model   string
	dims    int
	client  *http.Client
}

var _ Embedder = (*OllamaEmbedder)(nil)

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewOllamaEmbedder dials baseURL and probes dimensions with a short test
// string, mirroring the original binding's constructor.
func NewOllamaEmbedder(ctx context.Context, baseURL, model string) (*OllamaEmbedder, error) {
	e := &OllamaEmbedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	probe, err := e.Embed(ctx, "dimension probe")
	if err != nil {
		return nil, err
	}
	e.dims = len(probe)
	return e, nil
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = prepareText(text)

	body, err := json.Marshal(ollamaEmbedRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, boogererrors.External("marshal ollama embed request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, boogererrors.External("build ollama embed request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, boogererrors.External("ollama embedding request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, boogererrors.External(fmt.Sprintf("ollama returned HTTP %d: %s", resp.StatusCode, respBody), nil)
	}

	var result ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, boogererrors.External("decode ollama embed response", err)
	}
	return result.Embedding, nil
}

func (e *OllamaEmbedder) ModelName() string { return e.model }
func (e *OllamaEmbedder) Dimensions() int   { return e.dims }
