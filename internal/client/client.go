// Package client talks to the job-application tracking API.
//
// Each exported method maps to one endpoint. Requests carry the bearer token
// of the supplied TokenSource when it holds one; any non-2xx response is
// reported as an *Error whose message is the generic text for that operation.
package client

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

	"golang.org/x/time/rate"

	"github.com/jobtrack/jobtrack-go/internal/platform/correlation"
	"github.com/jobtrack/jobtrack-go/internal/platform/version"
)

// TokenSource supplies the bearer token for authenticated requests.
// An empty token means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// Client is an API client bound to one backend and one session.
type Client struct {
	baseURL string
	http    *http.Client
	auth    TokenSource
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every request. Zero keeps the default of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithRateLimit caps outgoing requests to rps per second with the given
// burst. A non-positive rps leaves requests unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New creates a Client for the API at baseURL. auth may be nil for a client
// that only logs in or signs up.
func New(baseURL string, auth TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		auth:    auth,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describes one request.
type call struct {
	op     string
	method string
	path   string
	authed bool
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, cl call) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Op: cl.op, Kind: KindNetwork, Err: err}
	}

	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", cl.path, err)
		}
		body = bytes.NewReader(b)
	}

	id := correlation.NewID()
	ctx = correlation.WithID(ctx, id)

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("building %s request: %w", cl.path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", id)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.authed && c.auth != nil {
		if token := c.auth.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "api request failed", "method", cl.method, "path", cl.path, "error", err)
		return &Error{Op: cl.op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	slog.DebugContext(ctx, "api request",
		"method", cl.method,
		"path", cl.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The error body is not surfaced; drain it so the connection is reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		kind := kindForStatus(resp.StatusCode)
		slog.InfoContext(ctx, "api request rejected", "path", cl.path, "status", resp.StatusCode, "kind", kind)
		return &Error{Op: cl.op, Kind: kind, Status: resp.StatusCode}
	}

	if cl.out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return &Error{Op: cl.op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}
