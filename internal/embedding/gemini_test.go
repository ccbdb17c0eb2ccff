package embedding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGemini_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"embedding":{"values":[0.1,0.2,0.3]}}`))
	}))
	defer server.Close()

	p := NewGemini(&GeminiConfig{APIKey: "test-key", BaseURL: server.URL})
	require.True(t, p.Enabled())

	vec, err := p.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestGemini_EmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewGemini(&GeminiConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := p.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestGemini_EmbedEmptyValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embedding":{"values":[]}}`))
	}))
	defer server.Close()

	p := NewGemini(&GeminiConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := p.Embed(context.Background(), "hello")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestGemini_EmbedMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 响应但 JSON 被截断
		w.Write([]byte(`{"embedding":{"values":[0.1,`))
	}))
	defer server.Close()

	p := NewGemini(&GeminiConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := p.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestNewGemini_NoAPIKey(t *testing.T) {
	p := NewGemini(&GeminiConfig{})
	assert.False(t, p.Enabled())

	_, err := p.Embed(context.Background(), "hello")
	assert.True(t, errors.Is(err, ErrUnavailable))
}
