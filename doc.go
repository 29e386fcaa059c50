// Package saferequests is a resilient HTTP request layer: blocking
// verb calls that transparently retry transient network errors and
// retry-eligible response statuses before handing the final outcome
// back to the caller.
//
// Two client variants share the same retry semantics:
//   - Session reuses one underlying transport (connection pooling)
//     across calls and applies per-call options only.
//   - Client opens a fresh connection per call and merges persistent
//     query parameters, headers, and auth into each request.
//
// Package-level verb functions (Get, Post, ...) are bound to a shared
// default Client with an all-default retry policy.
//
// Retries
//   - A response whose status code is in the policy's code set retries
//     until the limit is exhausted; the final response is then returned
//     as a normal value, never an error.
//   - Statuses outside the set (including 4xx/5xx) are returned
//     immediately; callers inspect Response.StatusCode themselves.
//   - Transport errors propagate as *TransportError unless the policy
//     enables retry-on-error for the classified kind.
//   - The wait between attempts is a blocking sleep; callers who need a
//     bound on total wall-clock time impose it externally.
package saferequests
