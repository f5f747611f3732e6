// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the remote fetch client shared by every stage
// that talks to an upstream HTTP API. It centralizes timeout, retry, and
// backoff policy so call sites never roll their own retry loops.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// transient failures. The delay for attempt n is RetryBaseDelay * 2^n.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// maxBodySize bounds how much of a response is read (16 MiB). Vocabulary
// and E-utilities payloads are far below this.
const maxBodySize = 16 << 20

// ResponseCache stores successful GET responses keyed by URL. Implemented
// by the SQLite cache; nil disables caching.
type ResponseCache interface {
	Get(url string) (body []byte, contentType string, ok bool)
	Put(url, contentType string, body []byte) error
}

// Client is the shared fetch client. All outbound calls in the pipeline go
// through it.
type Client struct {
	HTTP       *http.Client
	MaxRetries int
	UserAgent  string

	// Cache, when non-nil, is consulted before the network and filled
	// after a successful fetch.
	Cache ResponseCache
}

// Body is a fetched response body plus its declared content type.
type Body struct {
	Data        []byte
	ContentType string
}

// IsJSON reports whether the response declared a JSON content type.
func (b *Body) IsJSON() bool {
	return strings.HasPrefix(b.ContentType, "application/json")
}

// DecodeJSON unmarshals the body into v.
func (b *Body) DecodeJSON(v any) error {
	return json.Unmarshal(b.Data, v)
}

// Text returns the body as a string.
func (b *Body) Text() string {
	return string(b.Data)
}

// FetchError reports a fetch that failed after exhausting retries. Callers
// treat it as "no data" and continue; it never aborts a task.
type FetchError struct {
	URL        string
	StatusCode int // last HTTP status, 0 for transport errors
	Attempts   int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Get fetches rawURL with retry on transient failures: transport errors and
// non-2xx responses (a 503 from a busy provider is retried the same as any
// other failure). Backoff doubles each attempt and the wait is cancellable
// through ctx. After exhausting retries it returns a *FetchError.
func (c *Client) Get(ctx context.Context, rawURL string) (*Body, error) {
	return c.get(ctx, rawURL, "")
}

// GetJSON fetches rawURL with an Accept: application/json header and decodes
// the response into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	body, err := c.get(ctx, rawURL, "application/json")
	if err != nil {
		return err
	}
	if err := body.DecodeJSON(v); err != nil {
		return fmt.Errorf("parsing JSON from %s: %w", rawURL, err)
	}
	return nil
}

// GetText fetches rawURL and returns the body as text.
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	body, err := c.get(ctx, rawURL, "")
	if err != nil {
		return "", err
	}
	return body.Text(), nil
}

func (c *Client) get(ctx context.Context, rawURL, accept string) (*Body, error) {
	if c.Cache != nil {
		if data, contentType, ok := c.Cache.Get(rawURL); ok {
			return &Body{Data: data, ContentType: contentType}, nil
		}
	}

	maxRetries := c.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		body, err := c.doOnce(ctx, rawURL, accept)
		if err == nil {
			if c.Cache != nil {
				// Cache write failures are not fetch failures.
				_ = c.Cache.Put(rawURL, body.ContentType, body.Data)
			}
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err

		if attempt >= maxRetries {
			return nil, &FetchError{
				URL:        rawURL,
				StatusCode: statusOf(err),
				Attempts:   attempt + 1,
				Err:        lastErr,
			}
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// statusError marks a non-2xx response so retries can report the last status.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.code, e.url)
}

func statusOf(err error) int {
	if se, ok := err.(*statusError); ok {
		return se.code
	}
	return 0
}

func (c *Client) doOnce(ctx context.Context, rawURL, accept string) (*Body, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &statusError{code: resp.StatusCode, url: rawURL}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Body{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}
