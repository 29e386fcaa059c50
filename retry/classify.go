package retry

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// ErrorKind tags a transport error with the failure category the policy
// decides on. It replaces exception-type matching with an explicit
// classification step.
type ErrorKind string

const (
	// KindConnection covers connection-level failures: refused or reset
	// connections, DNS resolution errors, unreachable hosts.
	KindConnection ErrorKind = "connection"
	// KindTimeout covers deadline expiry, either from the transport or
	// from a context deadline.
	KindTimeout ErrorKind = "timeout"
	// KindOther covers everything else; never retryable by default.
	KindOther ErrorKind = "other"
)

func (k ErrorKind) String() string { return string(k) }

// Classify maps a transport error to its ErrorKind. A caller-initiated
// cancellation is KindOther so the retry loop never absorbs it.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}
	if errors.Is(err, context.Canceled) {
		return KindOther
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnection
	}

	// url.Error wraps transport failures that carry no typed cause,
	// e.g. "unsupported protocol scheme" stays KindOther while a dial
	// failure is caught by the net.OpError branch above.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Temporary() {
		return KindConnection
	}

	return KindOther
}
