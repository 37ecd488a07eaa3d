package embed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CryptArtificer/booger/internal/config"
)

func TestNewFromConfigNoneReturnsNilNil(t *testing.T) {
	e, err := NewFromConfig(context.Background(), config.EmbedBackend{Type: "none"})
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestNewFromConfigEmptyTypeReturnsNilNil(t *testing.T) {
	e, err := NewFromConfig(context.Background(), config.EmbedBackend{})
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestNewFromConfigOllamaDialsConfiguredURL(t *testing.T) {
	var hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.Write([]byte(`{"embedding":[0.1,0.2]}`))
	}))
	defer srv.Close()

	e, err := NewFromConfig(context.Background(), config.EmbedBackend{Type: "ollama", URL: srv.URL, Model: "m"})
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.True(t, hit)
	assert.Equal(t, "m", e.ModelName())
}

func TestNewFromConfigOpenAIDialsConfiguredURL(t *testing.T) {
	var hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	defer srv.Close()

	e, err := NewFromConfig(context.Background(), config.EmbedBackend{Type: "openai", URL: srv.URL, Model: "m"})
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.True(t, hit)
	assert.Equal(t, 3, e.Dimensions())
}

func TestNewFromConfigUnknownTypeIsError(t *testing.T) {
	_, err := NewFromConfig(context.Background(), config.EmbedBackend{Type: "carrier-pigeon"})
	assert.Error(t, err)
}
