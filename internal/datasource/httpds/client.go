// Package httpds fetches pipeline inputs over HTTP. Transient failures
// (transport errors, 429 and 5xx) are retried with exponential backoff.
package httpds

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
)

// Config configures the client. Zero values get defaults: 30s timeout,
// 3 retries, 200ms initial backoff capped at 5s.
type Config struct {
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt. Zero means
	// the default; a negative value disables retries.
	MaxRetries int

	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Header is sent with every request.
	Header http.Header

	// Transport replaces http.DefaultTransport when set.
	Transport http.RoundTripper
}

// Client wraps an http.Client with retry and backoff.
type Client struct {
	httpClient     *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	header         http.Header
}

// NewClient constructs a Client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	switch {
	case cfg.MaxRetries == 0:
		cfg.MaxRetries = 3
	case cfg.MaxRetries < 0:
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout, Transport: transport},
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		header:         cfg.Header.Clone(),
	}
}

// Get fetches url. A response is returned only for a non-retryable status;
// the caller closes its body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	if url == "" {
		return nil, errors.New("httpds: url must not be empty")
	}
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 0 {
			if err := sleep(ctx, backoff(c.initialBackoff, attempt-1, c.maxBackoff)); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errors.Wrap(err, "httpds: build request")
		}
		for k, vs := range c.header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = errors.Wrapf(err, "httpds: GET %s", url)
			continue
		}
		if !retryable(resp.StatusCode) {
			return resp, nil
		}
		_ = resp.Body.Close()
		lastErr = errors.Newf("httpds: GET %s: retryable status %d", url, resp.StatusCode)
	}
	return nil, errors.Wrapf(lastErr, "httpds: giving up after %d attempts", c.maxRetries+1)
}

// retryable treats 429 and 5xx as transient.
func retryable(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code <= 599)
}

// backoff returns initial * 2^retry, clamped to limit.
func backoff(initial time.Duration, retry int, limit time.Duration) time.Duration {
	d := initial << retry
	if d <= 0 || d > limit {
		return limit
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
