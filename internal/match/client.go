package match

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

	"github.com/google/uuid"
)

const (
	// DefaultEndpoint is where the matching service listens in a local setup.
	DefaultEndpoint = "http://localhost:8000/api/match"
	// DefaultTimeout bounds a single submission.
	DefaultTimeout = 10 * time.Second

	userAgent        = "skillx/1.0"
	maxResponseBytes = 4 << 20
	maxErrorExcerpt  = 200
)

// Client submits match requests to a fixed endpoint.
type Client struct {
	endpoint   string
	healthURL  string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client is copied,
// so the configured timeout never leaks into hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHealthURL overrides the health check address.
func WithHealthURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.healthURL = u
		}
	}
}

// NewClient creates a client for the given endpoint, which must be an
// absolute http or https URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := parseHTTPURL(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	c := &Client{
		endpoint:   endpoint,
		healthURL:  (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/health"}).String(),
		timeout:    DefaultTimeout,
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	hc.Timeout = c.timeout
	c.httpClient = &hc

	if _, err := parseHTTPURL(c.healthURL); err != nil {
		return nil, fmt.Errorf("invalid health url %q: %w", c.healthURL, err)
	}

	return c, nil
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Endpoint returns the submission address.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// HealthURL returns the health check address.
func (c *Client) HealthURL() string {
	return c.healthURL
}

// Submit posts req as JSON and returns the response body unchanged. Any
// failure is reported as a *SubmitError. Submit never retries.
func (c *Client) Submit(ctx context.Context, req MatchRequest) (json.RawMessage, error) {
	if req.Skills == nil {
		req.Skills = []string{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)

	log := c.logger.With("request_id", requestID, "endpoint", c.endpoint)
	log.Debug("submitting match request", "id", req.ID, "skills", len(req.Skills))
	start := time.Now()

	respBody, status, err := c.do(httpReq)
	if err != nil {
		log.Warn("match request failed", "error", err, "elapsed", time.Since(start))
		return nil, err
	}

	if status < 200 || status >= 300 {
		serr := &SubmitError{
			Kind:       Status,
			Endpoint:   c.endpoint,
			StatusCode: status,
			Message:    excerpt(respBody),
		}
		log.Warn("match request rejected", "status", status, "elapsed", time.Since(start))
		return nil, serr
	}

	if !json.Valid(respBody) {
		log.Warn("match response is not JSON", "bytes", len(respBody))
		return nil, &SubmitError{
			Kind:       Malformed,
			Endpoint:   c.endpoint,
			StatusCode: status,
			Message:    excerpt(respBody),
		}
	}

	log.Info("match request completed", "status", status, "bytes", len(respBody), "elapsed", time.Since(start))
	return json.RawMessage(respBody), nil
}

// Health calls the health endpoint and returns its body.
func (c *Client) Health(ctx context.Context) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	body, status, err := c.do(httpReq)
	if err != nil {
		if serr, ok := err.(*SubmitError); ok {
			serr.Endpoint = c.healthURL
		}
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &SubmitError{
			Kind:       Status,
			Endpoint:   c.healthURL,
			StatusCode: status,
			Message:    excerpt(body),
		}
	}
	return body, nil
}

// do executes the request and reads a bounded body. Transport and read
// failures are returned as Unreachable errors, bodies over maxResponseBytes
// as TooLarge.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &SubmitError{Kind: Unreachable, Endpoint: c.endpoint, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, resp.StatusCode, &SubmitError{
			Kind:       Unreachable,
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Message:    "reading response",
			Cause:      err,
		}
	}
	if len(body) > maxResponseBytes {
		return nil, resp.StatusCode, &SubmitError{
			Kind:       TooLarge,
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("body exceeds %d bytes", maxResponseBytes),
		}
	}
	return body, resp.StatusCode, nil
}

func parseHTTPURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host")
	}
	return u, nil
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorExcerpt {
		s = s[:maxErrorExcerpt] + "..."
	}
	return s
}
