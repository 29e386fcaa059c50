package retry

import (
	"fmt"
	"time"
)

const (
	// DefaultDelay is the default wait between retries.
	DefaultDelay = 1 * time.Second

	// DefaultLimit is the default maximum number of retries beyond the
	// first attempt.
	DefaultLimit = 10

	// DefaultMaxExpBackoff is the default ceiling on the wait when
	// exponential backoff is enabled.
	DefaultMaxExpBackoff = 60 * time.Second
)

// DefaultCodes returns the default set of HTTP status codes that trigger
// a retry: 429 plus the full 5xx range through 511.
func DefaultCodes() map[int]struct{} {
	codes := map[int]struct{}{429: {}}
	for code := 500; code <= 511; code++ {
		codes[code] = struct{}{}
	}
	return codes
}

// DefaultKinds returns the default set of transport error kinds that are
// considered retryable when RetryOnError is enabled.
func DefaultKinds() map[ErrorKind]struct{} {
	return map[ErrorKind]struct{}{
		KindConnection: {},
		KindTimeout:    {},
	}
}

// Policy is the immutable retry configuration owned by a client instance.
// A zero field falls back to its default when the policy is built through
// NewPolicy; Validate enforces the invariants on fully populated policies.
type Policy struct {
	// Delay is the base wait between retries.
	Delay time.Duration
	// Limit is the maximum number of retries, not counting the first
	// attempt.
	Limit int
	// Codes is the set of HTTP status codes that force a retry.
	Codes map[int]struct{}
	// ExpBackoff doubles the wait after each retry when set.
	ExpBackoff bool
	// MaxExpBackoff caps the wait growth when ExpBackoff is set.
	MaxExpBackoff time.Duration
	// RetryOnError enables retrying classified transport errors.
	RetryOnError bool
	// Kinds is the set of transport error kinds that count as retryable.
	Kinds map[ErrorKind]struct{}
}

// NewPolicy returns a Policy with every unset field replaced by its
// default value.
func NewPolicy() Policy {
	return Policy{
		Delay:         DefaultDelay,
		Limit:         DefaultLimit,
		Codes:         DefaultCodes(),
		MaxExpBackoff: DefaultMaxExpBackoff,
		Kinds:         DefaultKinds(),
	}
}

// Validate checks the policy invariants.
func (p Policy) Validate() error {
	if p.Limit < 0 {
		return fmt.Errorf("retry limit must be >= 0, got %d", p.Limit)
	}
	if p.Delay <= 0 {
		return fmt.Errorf("retry delay must be positive, got %v", p.Delay)
	}
	if p.MaxExpBackoff < p.Delay {
		return fmt.Errorf("max backoff %v must be >= delay %v", p.MaxExpBackoff, p.Delay)
	}
	return nil
}

// RetryableStatus reports whether code is in the retryable status set.
func (p Policy) RetryableStatus(code int) bool {
	_, ok := p.Codes[code]
	return ok
}

// retryKind reports whether kind is in the retryable error kind set.
func (p Policy) retryKind(kind ErrorKind) bool {
	_, ok := p.Kinds[kind]
	return ok
}

// State tracks the progress of one attempt loop: retries remaining and
// the wait to apply before the next attempt. It is created per call and
// advanced on each retry decision.
type State struct {
	remaining int
	wait      time.Duration
}

// NewState returns the initial loop state for the policy.
func (p Policy) NewState() State {
	return State{remaining: p.Limit, wait: p.Delay}
}

// Remaining returns the number of retries still available.
func (s State) Remaining() int {
	return s.remaining
}

// advance consumes one retry and grows the wait when exponential backoff
// is enabled.
func (s *State) advance(p Policy) {
	s.remaining--
	if p.ExpBackoff {
		next := s.wait * 2
		if next > p.MaxExpBackoff {
			next = p.MaxExpBackoff
		}
		s.wait = next
	}
}

// Decision is the outcome of consulting the policy after one attempt.
// When Retry is set the executor sleeps Wait and reissues the request;
// otherwise the attempt's outcome is final.
type Decision struct {
	Retry bool
	Wait  time.Duration
}

// DecideStatus consults the policy for a completed HTTP response. The
// wait returned is the state's current wait; the state advances only on
// a retry decision.
func (p Policy) DecideStatus(code int, s *State) Decision {
	if p.RetryableStatus(code) && s.remaining > 0 {
		d := Decision{Retry: true, Wait: s.wait}
		s.advance(p)
		return d
	}
	return Decision{}
}

// DecideError consults the policy for a failed transport call. Errors
// are retried only when RetryOnError is set, the classified kind is
// retryable, and retries remain; an exhausted retryable error is the
// terminal failure and is never masked.
func (p Policy) DecideError(err error, s *State) Decision {
	if !p.RetryOnError {
		return Decision{}
	}
	if !p.retryKind(Classify(err)) {
		return Decision{}
	}
	if s.remaining <= 0 {
		return Decision{}
	}
	d := Decision{Retry: true, Wait: s.wait}
	s.advance(p)
	return d
}
