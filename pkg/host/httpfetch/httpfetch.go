// Package httpfetch implements host.Fetcher over net/http.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vango-dev/weave/pkg/host"
)

// DefaultMaxBytes caps response bodies read by a Fetcher.
const DefaultMaxBytes = 8 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("httpfetch: GET %s: status %d", e.URL, e.Code)
}

// Fetcher issues GET requests and returns the body as text.
type Fetcher struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client

	// MaxBytes limits the body size. Zero means DefaultMaxBytes.
	MaxBytes int64
}

var _ host.Fetcher = (*Fetcher)(nil)

// New creates a Fetcher using client.
func New(client *http.Client) *Fetcher {
	return &Fetcher{Client: client}
}

// Fetch implements host.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("httpfetch: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("httpfetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return "", fmt.Errorf("httpfetch: read body: %w", err)
	}
	return string(body), nil
}
