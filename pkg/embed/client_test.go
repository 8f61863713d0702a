package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddingHandler(t *testing.T, vectorFor func(text string) []float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var resp embeddingResponse
		for i, text := range req.Input {
			resp.Data = append(resp.Data, struct {
				Index     int       `json:"index"`
				Embedding []float64 `json:"embedding"`
			}{Index: i, Embedding: vectorFor(text)})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestEmbed_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(embeddingHandler(t, func(text string) []float64 {
		return []float64{float64(len(text)), 1}
	}))
	defer srv.Close()

	client := NewClient("test-key", "jina-embeddings-v3", WithBaseURL(srv.URL))
	got, err := client.Embed(context.Background(), []string{"Jobticket", "Firmenwagen"})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float64{9, 1}, got[0])
	assert.Equal(t, []float64{11, 1}, got[1])
}

func TestEmbed_EmptyInput(t *testing.T) {
	t.Parallel()

	client := NewClient("test-key", "jina-embeddings-v3")
	got, err := client.Embed(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEmbed_Batching(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.LessOrEqual(t, len(req.Input), 2)

		var resp embeddingResponse
		for i := range req.Input {
			resp.Data = append(resp.Data, struct {
				Index     int       `json:"index"`
				Embedding []float64 `json:"embedding"`
			}{Index: i, Embedding: []float64{1}})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClient("test-key", "jina-embeddings-v3",
		WithBaseURL(srv.URL),
		WithBatchSize(2),
		WithRateLimit(1000),
	)
	got, err := client.Embed(context.Background(), []string{"a", "b", "c", "d", "e"})

	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, int32(3), requests.Load())
}

func TestEmbed_RetryOnRateLimit(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}
		json.NewEncoder(w).Encode(embeddingResponse{Data: []struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		}{{Index: 0, Embedding: []float64{0.5}}}})
	}))
	defer srv.Close()

	client := NewClient("test-key", "jina-embeddings-v3", WithBaseURL(srv.URL))
	got, err := client.Embed(context.Background(), []string{"Homeoffice"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(2), requests.Load())
}

func TestEmbed_CountMismatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingResponse{})
	}))
	defer srv.Close()

	client := NewClient("test-key", "jina-embeddings-v3", WithBaseURL(srv.URL))
	_, err := client.Embed(context.Background(), []string{"a", "b"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 inputs")
}

func TestEmbed_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad model"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", "jina-embeddings-v3", WithBaseURL(srv.URL))
	_, err := client.Embed(context.Background(), []string{"a"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
