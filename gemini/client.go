// Package gemini implements simplecal.Decomposer against the Gemini
// generateContent endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fmizzell/simplecal"
	"github.com/fmizzell/simplecal/prompts"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-pro"
	DefaultTimeout = 60 * time.Second
)

// Client calls generateContent once per Decompose. There are no retries.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	logger  *slog.Logger
	client  *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another host, e.g. an httptest server
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithModel selects the model name
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout bounds each request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client. An empty apiKey is accepted here and reported
// as a ConfigurationError on the first Decompose.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		logger:  slog.Default(),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.model
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type subtaskList struct {
	Subtasks []string `json:"subtasks"`
}

// Decompose sends the decomposition prompt for text and returns the subtasks
func (c *Client) Decompose(ctx context.Context, text string) ([]string, error) {
	if c.apiKey == "" {
		return nil, simplecal.ErrCredentialsMissing()
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompts.Decompose(text)}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, &simplecal.DecompositionError{Message: "could not encode request", Err: err}
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.baseURL, "/"), url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &simplecal.DecompositionError{Message: "invalid endpoint", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		// The URL carries the key; keep it out of the message
		if uerr, ok := err.(*url.Error); ok {
			err = uerr.Err
		}
		return nil, &simplecal.DecompositionError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("gemini generateContent", "model", c.model, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &simplecal.DecompositionError{
			Message: fmt.Sprintf("gemini returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return nil, &simplecal.DecompositionError{Message: "could not decode response", Err: err}
	}
	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return nil, &simplecal.DecompositionError{Message: "response has no candidates"}
	}

	var list subtaskList
	raw := stripCodeFence(gen.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, &simplecal.DecompositionError{Message: "response is not a subtask list", Err: err}
	}
	if len(list.Subtasks) == 0 {
		return nil, &simplecal.DecompositionError{Message: "no subtasks returned"}
	}
	return list.Subtasks, nil
}

// stripCodeFence removes a ```json fence some models wrap around JSON output
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
