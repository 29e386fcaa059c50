package saferequests

import (
	"context"
	"sync"

	"github.com/xopy-io/saferequests/logger"
)

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the process-wide one-shot Client backing the
// package-level verb functions: all-default retry policy, no
// persistent settings, initialized once on first use.
func Default() *Client {
	defaultOnce.Do(func() {
		defaultClient = NewClient(logger.New("info", false))
	})
	return defaultClient
}

// Request sends a request through the default client.
func Request(ctx context.Context, method, url string, opts *RequestOptions) (*Response, error) {
	return Default().Request(ctx, method, url, opts)
}

// Get sends a GET request through the default client.
func Get(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return Default().Get(ctx, url, opts)
}

// Head sends a HEAD request through the default client.
func Head(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return Default().Head(ctx, url, opts)
}

// Options sends an OPTIONS request through the default client.
func Options(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return Default().Options(ctx, url, opts)
}

// Post sends a POST request through the default client.
func Post(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return Default().Post(ctx, url, opts)
}

// Put sends a PUT request through the default client.
func Put(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return Default().Put(ctx, url, opts)
}

// Patch sends a PATCH request through the default client.
func Patch(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return Default().Patch(ctx, url, opts)
}

// Delete sends a DELETE request through the default client.
func Delete(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return Default().Delete(ctx, url, opts)
}
