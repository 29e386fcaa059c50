package saferequests

import (
	"context"
	"net/http"
	"time"

	"github.com/xopy-io/saferequests/settings"
)

// BasicAuth contains basic authentication credentials.
type BasicAuth = settings.BasicAuth

// Requester is the interface shared by both client variants.
type Requester interface {
	Request(ctx context.Context, method, url string, opts *RequestOptions) (*Response, error)
	Get(ctx context.Context, url string, opts *RequestOptions) (*Response, error)
	Head(ctx context.Context, url string, opts *RequestOptions) (*Response, error)
	Options(ctx context.Context, url string, opts *RequestOptions) (*Response, error)
	Post(ctx context.Context, url string, opts *RequestOptions) (*Response, error)
	Put(ctx context.Context, url string, opts *RequestOptions) (*Response, error)
	Patch(ctx context.Context, url string, opts *RequestOptions) (*Response, error)
	Delete(ctx context.Context, url string, opts *RequestOptions) (*Response, error)
}

// RequestOptions carries the per-call request values. A nil *RequestOptions is
// equivalent to the zero value.
type RequestOptions struct {
	// Params holds query parameters in any of the accepted shapes:
	// url.Values, map[string][]string, map[string]string,
	// map[string]any, [][2]string pairs, or an encoded query string.
	Params any
	// Headers are merged case-insensitively over the client's
	// persistent headers; per-call values win.
	Headers map[string]string
	// Auth overrides the client's persistent credential outright.
	Auth *BasicAuth
	// Body is sent as the request body verbatim.
	Body []byte
	// JSON is marshalled as the request body with an
	// application/json content type. Ignored when Body is set.
	JSON any
	// Timeout bounds each individual attempt, not the whole retry
	// loop. Zero means the client's default.
	Timeout time.Duration
	// NoRedirect disables following redirects for this call.
	NoRedirect bool
}

// Response is the terminal outcome of a request call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// URL is the fully resolved request URL reported by the
	// transport, after parameter encoding and any redirects.
	URL string
	// Elapsed is the wall-clock time from the first attempt's start
	// to the terminal outcome, inter-retry sleeps included.
	Elapsed time.Duration
	// Attempts is the number of transport calls made.
	Attempts int
}
