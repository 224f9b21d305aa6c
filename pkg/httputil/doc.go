// Package httputil provides retry helpers for outbound HTTP requests.
//
// [Retry] re-runs an operation when it fails with a [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Delays double after each attempt. A rate-limited response carrying a
// Retry-After value waits at least that long, up to [MaxRetryAfter].
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchPage(ctx, url)
//	})
package httputil
