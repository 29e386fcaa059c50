// Package settings merges per-call request values with a client's
// persistent defaults: query parameters, headers, and auth credentials.
// Per-call values always win on collision.
package settings

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrInvalidParams reports a query parameter value supplied in an
// unsupported shape. It is never retried.
var ErrInvalidParams = errors.New("invalid parameter format")

// BasicAuth contains basic authentication credentials.
type BasicAuth struct {
	Username string
	Password string
}

// Settings holds the persistent defaults attached to every call made
// from a one-shot client. Immutable after construction.
type Settings struct {
	Params  url.Values
	Headers map[string]string
	Auth    *BasicAuth
}

// NormalizeParams coerces the accepted query parameter shapes to
// url.Values. Supported shapes: url.Values, map[string][]string,
// map[string]string, map[string]any (string or []string values; nil
// values are dropped), [][2]string pair sequences, and URL-encoded
// query strings as string or []byte. A nil input yields nil.
func NormalizeParams(v any) (url.Values, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string][]string:
		return url.Values(p), nil
	case map[string]string:
		out := make(url.Values, len(p))
		for k, val := range p {
			out.Set(k, val)
		}
		return out, nil
	case map[string]any:
		out := make(url.Values, len(p))
		for k, val := range p {
			switch tv := val.(type) {
			case nil:
				// dropped from the merged mapping
			case string:
				out.Set(k, tv)
			case []string:
				for _, item := range tv {
					out.Add(k, item)
				}
			case fmt.Stringer:
				out.Set(k, tv.String())
			case int, int64, float64, bool:
				out.Set(k, fmt.Sprintf("%v", tv))
			default:
				return nil, fmt.Errorf("%w: unsupported value %T for key %q", ErrInvalidParams, val, k)
			}
		}
		return out, nil
	case [][2]string:
		out := make(url.Values, len(p))
		for _, pair := range p {
			out.Add(pair[0], pair[1])
		}
		return out, nil
	case string:
		return parseQuery(p)
	case []byte:
		return parseQuery(string(p))
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidParams, v)
	}
}

func parseQuery(q string) (url.Values, error) {
	out, err := url.ParseQuery(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return out, nil
}

// MergeParams normalizes both sides and unions them with per-call
// precedence per key. Either side may be nil.
func MergeParams(perCall, persistent any) (url.Values, error) {
	call, err := NormalizeParams(perCall)
	if err != nil {
		return nil, err
	}
	base, err := NormalizeParams(persistent)
	if err != nil {
		return nil, err
	}

	if len(base) == 0 {
		return call, nil
	}
	if len(call) == 0 {
		return base, nil
	}

	merged := make(url.Values, len(base)+len(call))
	for k, vals := range base {
		merged[k] = vals
	}
	for k, vals := range call {
		merged[k] = vals
	}
	return merged, nil
}

// MergeHeaders unions per-call and persistent headers with
// case-insensitive key matching; the per-call value wins on collision.
func MergeHeaders(perCall, persistent map[string]string) http.Header {
	if len(perCall) == 0 && len(persistent) == 0 {
		return nil
	}

	merged := make(http.Header, len(perCall)+len(persistent))
	for k, v := range persistent {
		merged.Set(k, v)
	}
	for k, v := range perCall {
		merged.Set(k, v)
	}
	return merged
}

// MergeAuth picks the per-call credential when present, else the
// persistent one. No field-level merge happens.
func MergeAuth(perCall, persistent *BasicAuth) *BasicAuth {
	if perCall != nil {
		return perCall
	}
	return persistent
}
