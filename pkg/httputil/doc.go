// Package httputil provides retry helpers for the HTTP clients that fetch
// license texts.
//
// # Retry
//
// [Retry] re-runs an operation while it fails with a [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//
// Any other error stops immediately. The delay doubles after each failed
// attempt:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch(url)
//	})
//
// The number of attempts is set from --retries (retries + 1 attempts; the
// default of 0 retries means a single attempt).
package httputil
