// Package pastebins contains the compiled-in pastebin backends and the
// loader for declarative backend manifests.
package pastebins

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Options configures the built-in backends.
type Options struct {
	// UserAgent is sent with every request.
	UserAgent string
	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
	// GitHubToken authenticates gist creation.
	GitHubToken string
}

func (o Options) client() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// send issues the request and returns the response body. Any non-2xx status
// is an error.
func send(ctx context.Context, client *http.Client, method, url, contentType, userAgent string, headers map[string]string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send paste: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return data, nil
}
