// Package retry holds the retry policy configuration and the decision
// logic consulted by the request executor after every attempt.
//
// Decisions
//   - HTTP responses retry when the status code is in Policy.Codes and
//     retries remain; any other response is final, regardless of status.
//   - Transport errors retry only when Policy.RetryOnError is set and the
//     classified kind is in Policy.Kinds; otherwise they propagate after
//     the first attempt.
//   - A policy with Limit N yields at most N+1 transport calls.
//
// Backoff
//   - Constant delay by default.
//   - With ExpBackoff the wait doubles after each retry, capped at
//     MaxExpBackoff.
package retry
