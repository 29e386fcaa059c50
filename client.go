package saferequests

import (
	"context"
	"net/http"
	"time"

	"github.com/xopy-io/saferequests/logger"
	"github.com/xopy-io/saferequests/retry"
	"github.com/xopy-io/saferequests/settings"
)

// Client is the one-shot variant: keep-alives are disabled so every
// call opens a fresh connection, and persistent params, headers, and
// auth are merged into each request with per-call precedence.
// Immutable after construction.
type Client struct {
	httpClient *http.Client
	persistent settings.Settings
	exec       *executor
}

var _ Requester = (*Client)(nil)

// NewClient creates a Client with an all-default retry policy and no
// persistent settings.
func NewClient(log logger.Logger) *Client {
	c, _ := NewClientBuilder(log).Build()
	return c
}

// ClientBuilder configures and builds a one-shot Client.
type ClientBuilder struct {
	policy     retry.Policy
	log        logger.Logger
	httpClient *http.Client
	timeout    time.Duration

	params  any
	headers map[string]string
	auth    *BasicAuth
}

// NewClientBuilder creates a builder with default policy and timeout.
func NewClientBuilder(log logger.Logger) *ClientBuilder {
	return &ClientBuilder{
		policy:  retry.NewPolicy(),
		log:     log,
		timeout: DefaultTimeout,
	}
}

// WithRetryDelay sets the base wait between retries.
func (b *ClientBuilder) WithRetryDelay(d time.Duration) *ClientBuilder {
	b.policy.Delay = d
	return b
}

// WithRetryLimit sets the maximum number of retries beyond the first
// attempt.
func (b *ClientBuilder) WithRetryLimit(n int) *ClientBuilder {
	b.policy.Limit = n
	return b
}

// WithRetryCodes replaces the set of status codes that force a retry.
func (b *ClientBuilder) WithRetryCodes(codes ...int) *ClientBuilder {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	b.policy.Codes = set
	return b
}

// WithExpBackoff enables exponential backoff capped at ceiling.
func (b *ClientBuilder) WithExpBackoff(ceiling time.Duration) *ClientBuilder {
	b.policy.ExpBackoff = true
	b.policy.MaxExpBackoff = ceiling
	return b
}

// WithRetryOnError enables retrying transport errors of the given
// kinds; with no kinds the default set (connection, timeout) applies.
func (b *ClientBuilder) WithRetryOnError(kinds ...retry.ErrorKind) *ClientBuilder {
	b.policy.RetryOnError = true
	if len(kinds) > 0 {
		set := make(map[retry.ErrorKind]struct{}, len(kinds))
		for _, kind := range kinds {
			set[kind] = struct{}{}
		}
		b.policy.Kinds = set
	}
	return b
}

// WithPolicy replaces the whole retry policy.
func (b *ClientBuilder) WithPolicy(p retry.Policy) *ClientBuilder {
	b.policy = p
	return b
}

// WithTimeout sets the per-attempt request timeout.
func (b *ClientBuilder) WithTimeout(timeout time.Duration) *ClientBuilder {
	b.timeout = timeout
	return b
}

// WithHTTPClient supplies a custom transport client. The caller is
// responsible for its connection reuse semantics.
func (b *ClientBuilder) WithHTTPClient(hc *http.Client) *ClientBuilder {
	b.httpClient = hc
	return b
}

// WithPersistentParams sets default query parameters attached to every
// call, in any of the accepted shapes.
func (b *ClientBuilder) WithPersistentParams(params any) *ClientBuilder {
	b.params = params
	return b
}

// WithPersistentHeader adds a default header sent with every call.
func (b *ClientBuilder) WithPersistentHeader(key, value string) *ClientBuilder {
	if b.headers == nil {
		b.headers = make(map[string]string)
	}
	b.headers[key] = value
	return b
}

// WithPersistentAuth sets the default basic-auth credential.
func (b *ClientBuilder) WithPersistentAuth(username, password string) *ClientBuilder {
	b.auth = &BasicAuth{Username: username, Password: password}
	return b
}

// Build validates the policy, normalizes the persistent parameters,
// and creates the Client.
func (b *ClientBuilder) Build() (*Client, error) {
	if err := b.policy.Validate(); err != nil {
		return nil, err
	}

	params, err := settings.NormalizeParams(b.params)
	if err != nil {
		return nil, wrapSettingsErr(err)
	}

	log := b.log
	if log == nil {
		log = logger.New("info", false)
	}

	hc := b.httpClient
	if hc == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.DisableKeepAlives = true
		hc = &http.Client{Timeout: b.timeout, Transport: transport}
	}

	return &Client{
		httpClient: hc,
		persistent: settings.Settings{
			Params:  params,
			Headers: b.headers,
			Auth:    b.auth,
		},
		exec: newExecutor(b.policy, log),
	}, nil
}

// Request sends one request, merging persistent settings into the
// per-call options before executing the retry loop.
func (c *Client) Request(ctx context.Context, method, url string, opts *RequestOptions) (*Response, error) {
	hc := customizeClient(c.httpClient, opts)
	return c.exec.execute(ctx, hc, method, url, opts, c.persistent)
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodGet, url, opts)
}

// Head sends a HEAD request.
func (c *Client) Head(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodHead, url, opts)
}

// Options sends an OPTIONS request.
func (c *Client) Options(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodOptions, url, opts)
}

// Post sends a POST request.
func (c *Client) Post(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPost, url, opts)
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPut, url, opts)
}

// Patch sends a PATCH request.
func (c *Client) Patch(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPatch, url, opts)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, url, opts)
}
