// Package translate provides a client for the DeepL translation API, used to
// localize state and country names that the offline gazetteer carries in
// English.
package translate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the translation operations used by normalization.
type Client interface {
	// Translate translates text between the given ISO language codes.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Option configures the translation client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps requests per second against the API.
func WithRateLimit(perSec float64) Option {
	return func(c *httpClient) {
		if perSec > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSec), 1)
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	http    *http.Client

	mu    sync.Mutex
	cache map[string]string // "src|dst|text" → translation
}

// NewClient creates a new translation client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api-free.deepl.com/v2",
		limiter: rate.NewLimiter(rate.Limit(2), 1),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type translationResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

func (c *httpClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	cacheKey := strings.ToUpper(sourceLang) + "|" + strings.ToUpper(targetLang) + "|" + text
	c.mu.Lock()
	if cached, ok := c.cache[cacheKey]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "translate: rate limiter")
		}
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", strings.ToUpper(sourceLang))
	form.Set("target_lang", strings.ToUpper(targetLang))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "translate: create request")
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "translate: request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "translate: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("translate: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result translationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", eris.Wrap(err, "translate: unmarshal response")
	}
	if len(result.Translations) == 0 {
		return "", eris.New("translate: empty response")
	}

	translated := result.Translations[0].Text
	c.mu.Lock()
	c.cache[cacheKey] = translated
	c.mu.Unlock()

	return translated, nil
}
