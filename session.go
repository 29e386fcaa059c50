package saferequests

import (
	"context"
	"net/http"
	"time"

	"github.com/xopy-io/saferequests/logger"
	"github.com/xopy-io/saferequests/retry"
	"github.com/xopy-io/saferequests/settings"
)

// DefaultTimeout is the default per-attempt request timeout.
const DefaultTimeout = 30 * time.Second

// Session reuses one underlying transport across calls, keeping pooled
// connections alive. It applies per-call options only; persistent
// settings belong to the one-shot Client. Immutable after construction.
type Session struct {
	httpClient *http.Client
	exec       *executor
}

var _ Requester = (*Session)(nil)

// NewSession creates a Session with an all-default retry policy.
func NewSession(log logger.Logger) *Session {
	s, _ := NewSessionBuilder(log).Build()
	return s
}

// SessionBuilder configures and builds a Session.
type SessionBuilder struct {
	policy     retry.Policy
	log        logger.Logger
	httpClient *http.Client
	timeout    time.Duration
}

// NewSessionBuilder creates a builder with default policy and timeout.
func NewSessionBuilder(log logger.Logger) *SessionBuilder {
	return &SessionBuilder{
		policy:  retry.NewPolicy(),
		log:     log,
		timeout: DefaultTimeout,
	}
}

// WithRetryDelay sets the base wait between retries.
func (b *SessionBuilder) WithRetryDelay(d time.Duration) *SessionBuilder {
	b.policy.Delay = d
	return b
}

// WithRetryLimit sets the maximum number of retries beyond the first
// attempt.
func (b *SessionBuilder) WithRetryLimit(n int) *SessionBuilder {
	b.policy.Limit = n
	return b
}

// WithRetryCodes replaces the set of status codes that force a retry.
func (b *SessionBuilder) WithRetryCodes(codes ...int) *SessionBuilder {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	b.policy.Codes = set
	return b
}

// WithExpBackoff enables exponential backoff capped at ceiling.
func (b *SessionBuilder) WithExpBackoff(ceiling time.Duration) *SessionBuilder {
	b.policy.ExpBackoff = true
	b.policy.MaxExpBackoff = ceiling
	return b
}

// WithRetryOnError enables retrying transport errors of the given
// kinds; with no kinds the default set (connection, timeout) applies.
func (b *SessionBuilder) WithRetryOnError(kinds ...retry.ErrorKind) *SessionBuilder {
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
func (b *SessionBuilder) WithPolicy(p retry.Policy) *SessionBuilder {
	b.policy = p
	return b
}

// WithTimeout sets the per-attempt request timeout.
func (b *SessionBuilder) WithTimeout(timeout time.Duration) *SessionBuilder {
	b.timeout = timeout
	return b
}

// WithHTTPClient supplies a custom transport client, e.g. one with a
// tuned connection pool or a test RoundTripper.
func (b *SessionBuilder) WithHTTPClient(hc *http.Client) *SessionBuilder {
	b.httpClient = hc
	return b
}

// Build validates the policy and creates the Session.
func (b *SessionBuilder) Build() (*Session, error) {
	if err := b.policy.Validate(); err != nil {
		return nil, err
	}

	log := b.log
	if log == nil {
		log = logger.New("info", false)
	}

	hc := b.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: b.timeout}
	}

	return &Session{
		httpClient: hc,
		exec:       newExecutor(b.policy, log),
	}, nil
}

// Request sends one request with the session's retry policy.
func (s *Session) Request(ctx context.Context, method, url string, opts *RequestOptions) (*Response, error) {
	hc := customizeClient(s.httpClient, opts)
	return s.exec.execute(ctx, hc, method, url, opts, settings.Settings{})
}

// Get sends a GET request.
func (s *Session) Get(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return s.Request(ctx, http.MethodGet, url, opts)
}

// Head sends a HEAD request.
func (s *Session) Head(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return s.Request(ctx, http.MethodHead, url, opts)
}

// Options sends an OPTIONS request.
func (s *Session) Options(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return s.Request(ctx, http.MethodOptions, url, opts)
}

// Post sends a POST request.
func (s *Session) Post(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return s.Request(ctx, http.MethodPost, url, opts)
}

// Put sends a PUT request.
func (s *Session) Put(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return s.Request(ctx, http.MethodPut, url, opts)
}

// Patch sends a PATCH request.
func (s *Session) Patch(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return s.Request(ctx, http.MethodPatch, url, opts)
}

// Delete sends a DELETE request.
func (s *Session) Delete(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return s.Request(ctx, http.MethodDelete, url, opts)
}
