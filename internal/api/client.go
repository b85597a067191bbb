package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Tiliavir/trivial-trip-planner/internal/config"
	appLog "github.com/Tiliavir/trivial-trip-planner/internal/log"
)

// Result is the outcome of a gated call. Mocked is true when backend calls
// are disabled and no I/O happened; Data is then nil.
type Result struct {
	Data   any
	Mocked bool
}

// Client is the transport gate in front of the travel planner API. When the
// backend switch is off every call short-circuits to a mocked result.
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (auth is not applied).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// New builds a gate from an explicit API configuration.
func New(ctx context.Context, cfg config.APIConfig, opts ...Option) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = config.DefaultTimeoutSeconds * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		enabled: cfg.EnableBackendCalls,
	}
	if cfg.MaxRequestsPerSecond > 0 {
		burst := int(cfg.MaxRequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.MaxRequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = newHTTPClient(ctx, cfg, timeout)
	}
	return c
}

// Enabled reports whether real backend calls are performed.
func (c *Client) Enabled() bool { return c.enabled }

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string { return c.baseURL }

// Call performs method on path. query may be nil; body is JSON-encoded when
// non-nil. A non-2xx response yields *HTTPError; network failures, timeouts
// and undecodable bodies yield *UnknownError.
func (c *Client) Call(ctx context.Context, method, path string, query url.Values, body any) (Result, error) {
	if !c.enabled {
		appLog.Debug("backend calls disabled; mocked", "method", method, "path", path)
		return Result{Mocked: true}, nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Result{}, unknown("rate limiter", err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Result{}, unknown("encoding request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return Result{}, unknown("creating request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	appLog.Debug("api call", "method", method, "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, unknown("api request failed", err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return Result{}, unknown("reading response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		decoded, decErr := decodeBody(raw)
		if decErr != nil {
			decoded = strings.TrimSpace(string(raw))
		}
		return Result{}, newHTTPError(resp.StatusCode, decoded)
	}

	data, err := decodeBody(raw)
	if err != nil {
		return Result{}, unknown("decoding api response", err)
	}
	return Result{Data: data}, nil
}

// decodeBody decodes JSON keeping numbers as json.Number. An empty body
// decodes to nil.
func decodeBody(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
