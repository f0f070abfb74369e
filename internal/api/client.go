// Package api is the typed HTTP client for the question-answering backend.
// Response bodies are decoded into concrete structs at this boundary, and
// every failure is classified into the kavosh error taxonomy: transport
// problems are KindNetwork, non-2xx responses are KindServer carrying the
// server's detail text.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zhubert/kavosh/internal/errors"
	"github.com/zhubert/kavosh/internal/logger"
)

// maxBodyBytes caps how much of any response body is read.
const maxBodyBytes = 8 << 20

// healthTimeout bounds the header's health check. Other calls have no
// client timeout.
const healthTimeout = 5 * time.Second

// Client talks to the backend's /api endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient returns a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger.ComponentLogger("API"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search runs one question through the backend.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	const op = errors.Op("api.Search")

	var raw searchResponse
	if err := c.do(ctx, op, http.MethodPost, "/api/search", req, &raw); err != nil {
		return nil, err
	}
	if raw.Answer == nil || raw.Sources == nil {
		return nil, errors.MalformedResponse(op, fmt.Errorf("response is missing answer or sources"))
	}

	result := &SearchResult{
		Answer:   *raw.Answer,
		Sources:  *raw.Sources,
		Query:    raw.Query,
		Passages: raw.SearchResults,
	}
	if result.Sources == nil {
		result.Sources = []string{}
	}
	return result, nil
}

// GetConfig fetches the backend's current model settings.
func (c *Client) GetConfig(ctx context.Context) (*AdminConfig, error) {
	var cfg AdminConfig
	if err := c.do(ctx, errors.Op("api.GetConfig"), http.MethodGet, "/api/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig replaces the backend's model credentials.
func (c *Client) SaveConfig(ctx context.Context, update ConfigUpdate) (*Ack, error) {
	var ack Ack
	if err := c.do(ctx, errors.Op("api.SaveConfig"), http.MethodPost, "/api/config", update, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// IngestURL asks the backend to crawl and index a page.
func (c *Client) IngestURL(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	var result IngestResult
	if err := c.do(ctx, errors.Op("api.IngestURL"), http.MethodPost, "/api/ingest-url", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks that the backend is up.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	var h Health
	if err := c.do(ctx, errors.Op("api.Health"), http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// do sends one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, op errors.Op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.E(op, errors.KindInvalid, "failed to encode request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.E(op, errors.KindInvalid, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "op", op, "path", path, "error", err)
		return errors.Unreachable(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.Unreachable(op, err)
	}
	c.log.Debug("response", "op", op, "status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := parseDetail(data)
		c.log.Warn("backend error", "op", op, "status", resp.StatusCode, "detail", detail)
		return errors.Server(op, resp.StatusCode, detail)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.MalformedResponse(op, err)
	}
	return nil
}

// parseDetail extracts the "detail" field of an error body. FastAPI sends
// either a string or, for validation failures, a list of {msg} objects.
func parseDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// UserMessage is the text shown to the user for a failed call: the
// server's detail when it sent one, otherwise fallback.
func UserMessage(err error, fallback string) string {
	if d := errors.Detail(err); d != "" {
		return d
	}
	return fallback
}
