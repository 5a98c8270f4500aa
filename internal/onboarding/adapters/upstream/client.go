// Package upstream is the JSON-over-HTTP client shared by the authentication
// and business-creation adapters. It bounds every call with a timeout, guards
// the backend with a circuit breaker and propagates trace context.
package upstream

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"launchpad/pkg/platform/circuit"
	"launchpad/pkg/platform/sentinel"
)

const maxResponseBytes = 1 << 20

// LatencyObserver records upstream call latency by outcome.
type LatencyObserver interface {
	ObserveUpstream(upstream, outcome string, elapsed time.Duration)
}

type Client struct {
	name     string
	baseURL  string
	http     *http.Client
	breaker  *circuit.Breaker
	observer LatencyObserver
	logger   *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client. The timeout set
// by WithTimeout still applies.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithObserver(o LatencyObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New builds a client for the backend at baseURL. name labels metrics, logs
// and spans.
func New(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: circuit.New(name),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return c.name }

// PostJSON sends body to path and decodes the response envelope into out.
// Non-2xx responses that still carry a JSON envelope are decoded too: the
// backends report rejected credentials and invalid payloads that way. The
// returned status is 0 when no response was received.
//
// Transport failures, 5xx responses and an open breaker return an error
// wrapping sentinel.ErrUnavailable.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) (int, error) {
	if !c.breaker.Allow() {
		c.observe("circuit_open", 0)
		return 0, fmt.Errorf("%s: circuit open: %w", c.name, sentinel.ErrUnavailable)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("%s: encode request: %w", c.name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+strings.TrimLeft(path, "/"), bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.failure(ctx, "transport_error", time.Since(start), err)
		return 0, fmt.Errorf("%s: %w: %w", c.name, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.failure(ctx, "read_error", time.Since(start), err)
		return resp.StatusCode, fmt.Errorf("%s: read response: %w: %w", c.name, sentinel.ErrUnavailable, err)
	}
	elapsed := time.Since(start)

	if resp.StatusCode >= http.StatusInternalServerError {
		// Keep a decodable envelope so callers can surface the backend's message.
		_ = json.Unmarshal(raw, out)
		c.failure(ctx, "server_error", elapsed, fmt.Errorf("status %d", resp.StatusCode))
		return resp.StatusCode, fmt.Errorf("%s: returned %s: %w", c.name, resp.Status, sentinel.ErrUnavailable)
	}

	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "upstream circuit closed", "upstream", c.name)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.observe("decode_error", elapsed)
		return resp.StatusCode, fmt.Errorf("%s: decode response (status %d): %w", c.name, resp.StatusCode, err)
	}
	c.observe(outcomeFor(resp.StatusCode), elapsed)
	return resp.StatusCode, nil
}

func (c *Client) failure(ctx context.Context, outcome string, elapsed time.Duration, err error) {
	c.observe(outcome, elapsed)
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "upstream circuit opened",
			"upstream", c.name,
			"error", err,
		)
		return
	}
	c.logger.WarnContext(ctx, "upstream call failed",
		"upstream", c.name,
		"outcome", outcome,
		"error", err,
	)
}

func (c *Client) observe(outcome string, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(c.name, outcome, elapsed)
	}
}

func outcomeFor(status int) string {
	if status >= 200 && status < 300 {
		return "success"
	}
	return "rejected"
}
