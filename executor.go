package saferequests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xopy-io/saferequests/logger"
	"github.com/xopy-io/saferequests/retry"
	"github.com/xopy-io/saferequests/settings"
	"github.com/xopy-io/saferequests/trace"
)

// executor drives the attempt loop shared by both client variants:
// issue one transport call, consult the policy, sleep and reissue or
// hand the terminal outcome back.
type executor struct {
	policy retry.Policy
	log    logger.Logger
	sleep  func(time.Duration)
}

func newExecutor(policy retry.Policy, log logger.Logger) *executor {
	return &executor{policy: policy, log: log, sleep: time.Sleep}
}

func (e *executor) execute(ctx context.Context, hc *http.Client, method, target string, opts *RequestOptions, persistent settings.Settings) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	if target == "" {
		return nil, newRequestError("url cannot be empty", nil)
	}
	method = strings.ToUpper(method)

	params, err := settings.MergeParams(opts.Params, persistent.Params)
	if err != nil {
		return nil, wrapSettingsErr(err)
	}
	headers := settings.MergeHeaders(opts.Headers, persistent.Headers)
	auth := settings.MergeAuth(opts.Auth, persistent.Auth)

	u, err := url.Parse(target)
	if err != nil {
		return nil, newRequestError("malformed url", err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vals := range params {
			q[k] = vals
		}
		u.RawQuery = q.Encode()
	}

	body := opts.Body
	if body == nil && opts.JSON != nil {
		body, err = json.Marshal(opts.JSON)
		if err != nil {
			return nil, newRequestError("marshal json body", err)
		}
		if headers == nil {
			headers = make(http.Header)
		}
		if headers.Get("Content-Type") == "" {
			headers.Set("Content-Type", "application/json")
		}
	}

	requestID := trace.EnsureRequestID(ctx)
	state := e.policy.NewState()
	start := time.Now()

	for attempt := 1; ; attempt++ {
		req, err := e.buildRequest(ctx, method, u.String(), body, headers, auth, requestID)
		if err != nil {
			return nil, err
		}

		resp, err := hc.Do(req)
		if err != nil {
			if d := e.policy.DecideError(err, &state); d.Retry {
				e.logRetry(requestID, method, u.String(), attempt, d.Wait, 0, err)
				e.sleep(d.Wait)
				continue
			}
			e.log.Error().
				Str("request_id", requestID).
				Str("method", method).
				Str("url", u.String()).
				Int("attempts", attempt).
				Err(err).
				Msg("request failed")
			return nil, &TransportError{
				Kind:     retry.Classify(err),
				Method:   method,
				URL:      u.String(),
				Attempts: attempt,
				Err:      err,
			}
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			if d := e.policy.DecideError(readErr, &state); d.Retry {
				e.logRetry(requestID, method, u.String(), attempt, d.Wait, resp.StatusCode, readErr)
				e.sleep(d.Wait)
				continue
			}
			return nil, &TransportError{
				Kind:     retry.Classify(readErr),
				Method:   method,
				URL:      finalURL(resp, u),
				Attempts: attempt,
				Err:      readErr,
			}
		}

		if d := e.policy.DecideStatus(resp.StatusCode, &state); d.Retry {
			e.logRetry(requestID, method, u.String(), attempt, d.Wait, resp.StatusCode, nil)
			e.sleep(d.Wait)
			continue
		}

		if e.policy.RetryableStatus(resp.StatusCode) && state.Remaining() == 0 {
			e.log.Warn().
				Str("request_id", requestID).
				Str("method", method).
				Str("url", u.String()).
				Int("status", resp.StatusCode).
				Msgf("retry budget exhausted after %d attempt(s)", attempt)
		}

		out := &Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Body:       respBody,
			URL:        finalURL(resp, u),
			Elapsed:    time.Since(start),
			Attempts:   attempt,
		}
		e.log.Info().
			Str("request_id", requestID).
			Str("method", method).
			Str("url", out.URL).
			Int("status", out.StatusCode).
			Int("attempts", attempt).
			Dur("elapsed", out.Elapsed).
			Msg("returning response")
		return out, nil
	}
}

// buildRequest constructs the per-attempt http.Request. The body reader
// is rebuilt from the captured bytes so retries re-send it from the
// start.
func (e *executor) buildRequest(ctx context.Context, method, target string, body []byte, headers http.Header, auth *settings.BasicAuth, requestID string) (*http.Request, error) {
	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, newRequestError("failed to create HTTP request", err)
	}
	if headers != nil {
		req.Header = headers.Clone()
	}
	if req.Header.Get(trace.HeaderXRequestID) == "" {
		req.Header.Set(trace.HeaderXRequestID, requestID)
	}
	if auth != nil {
		req.SetBasicAuth(auth.Username, auth.Password)
	}
	return req, nil
}

func (e *executor) logRetry(requestID, method, url string, attempt int, wait time.Duration, status int, err error) {
	event := e.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", url).
		Int("attempt", attempt).
		Dur("wait", wait)
	if status != 0 {
		event = event.Int("status", status)
	}
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("retrying request")
}

// finalURL prefers the transport's own resolved URL so logs and the
// returned Response reflect what was actually sent, redirects included.
func finalURL(resp *http.Response, fallback *url.URL) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return fallback.String()
}

// customizeClient adjusts the shared client for per-call timeout and
// redirect settings. The transport is shared so pooled connections are
// kept.
func customizeClient(hc *http.Client, opts *RequestOptions) *http.Client {
	if opts == nil || (opts.Timeout <= 0 && !opts.NoRedirect) {
		return hc
	}
	clone := *hc
	if opts.Timeout > 0 {
		clone.Timeout = opts.Timeout
	}
	if opts.NoRedirect {
		clone.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return &clone
}
