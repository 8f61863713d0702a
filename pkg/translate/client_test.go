package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, "DeepL-Auth-Key test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "France", r.PostForm.Get("text"))
		assert.Equal(t, "EN", r.PostForm.Get("source_lang"))
		assert.Equal(t, "DE", r.PostForm.Get("target_lang"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translations":[{"text":"Frankreich"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.Translate(context.Background(), "France", "en", "de")

	require.NoError(t, err)
	assert.Equal(t, "Frankreich", got)
}

func TestTranslate_CachesRepeats(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"translations":[{"text":"Frankreich"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	for i := 0; i < 3; i++ {
		got, err := client.Translate(context.Background(), "France", "en", "de")
		require.NoError(t, err)
		assert.Equal(t, "Frankreich", got)
	}
	assert.Equal(t, int32(1), requests.Load())
}

func TestTranslate_EmptyText(t *testing.T) {
	t.Parallel()

	client := NewClient("test-key")
	got, err := client.Translate(context.Background(), "   ", "en", "de")

	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestTranslate_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := client.Translate(context.Background(), "France", "en", "de")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestTranslate_EmptyTranslations(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"translations":[]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Translate(context.Background(), "France", "en", "de")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
