// Package httputil provides the authenticated HTTP transport for live calls
// against the remote barn service.
package httputil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout     = 30 * time.Second
	healthProbeTimeout = 3 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 8 << 20
)

// Config configures the live transport.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration

	// RequestsPerSecond bounds outbound call rate; zero disables limiting.
	RequestsPerSecond float64
	Burst             int
}

// Client performs authenticated requests against the configured base URL.
// Each call is independent and stateless with respect to the remote service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
}

// New creates a live transport client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst == 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		limiter:    limiter,
	}
}

// Do executes one request and returns the body and status. contentType
// controls the Content-Type header: empty selects application/json when a
// body is present, and multipart callers pass the writer's boundary-bearing
// type so the header is never forced to JSON.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body []byte, contentType string) ([]byte, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	reqURL := JoinURL(c.baseURL, path)
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	} else if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// Healthy probes GET /health with a short dedicated timeout and reports
// whether the remote service answered 2xx.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, JoinURL(c.baseURL, "/health"), nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// JoinURL joins base and path, collapsing duplicate slashes while preserving
// the protocol's double slash, and never emits a trailing slash.
func JoinURL(base, path string) string {
	scheme := ""
	rest := base
	if idx := strings.Index(base, "://"); idx >= 0 {
		scheme = base[:idx+3]
		rest = base[idx+3:]
	}

	joined := rest + "/" + path
	for strings.Contains(joined, "//") {
		joined = strings.ReplaceAll(joined, "//", "/")
	}
	joined = strings.TrimRight(joined, "/")
	return scheme + joined
}

// StatusMessage extracts a human-readable error from a non-2xx response. The
// remote service reports failures in a conventional "detail" field; absent
// that, the status line is used.
func StatusMessage(status int, body []byte) string {
	if detail := gjson.GetBytes(body, "detail"); detail.Exists() && detail.String() != "" {
		return detail.String()
	}
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}
