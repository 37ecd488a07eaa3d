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

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint
// (POST <base>/v1/embeddings, {model,input} -> {data:[{embedding}]}).
// Config schema names this backend (spec §6) without fleshing it out; this
// gives it a concrete implementation alongside the Ollama binding.
type OpenAIEmbedder struct {
	baseURL string
	model   string
	apiKey  string
	dims    int
	client  *http.Client
}

var _ Embedder = (*OpenAIEmbedder)(nil)

type openAIEmbedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// NewOpenAIEmbedder dials baseURL and probes dimensions with a short test
// string. apiKey may be empty for locally hosted OpenAI-compatible servers.
func NewOpenAIEmbedder(ctx context.Context, baseURL, model, apiKey string) (*OpenAIEmbedder, error) {
	e := &OpenAIEmbedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	probe, err := e.Embed(ctx, "dimension probe")
	if err != nil {
		return nil, err
	}
	e.dims = len(probe)
	return e, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = prepareText(text)

	body, err := json.Marshal(openAIEmbedRequest{Model: e.model, Input: text})
	if err != nil {
		return nil, boogererrors.External("marshal openai embed request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, boogererrors.External("build openai embed request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, boogererrors.External("openai embedding request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, boogererrors.External(fmt.Sprintf("openai returned HTTP %d: %s", resp.StatusCode, respBody), nil)
	}

	var result openAIEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, boogererrors.External("decode openai embed response", err)
	}
	if len(result.Data) == 0 {
		return nil, boogererrors.External("openai response contained no embeddings", nil)
	}
	return result.Data[0].Embedding, nil
}

func (e *OpenAIEmbedder) ModelName() string { return e.model }
func (e *OpenAIEmbedder) Dimensions() int   { return e.dims }
