// Package integrations provides the HTTP client used to download license
// texts named by override configuration (license_file_url).
//
// # Overview
//
// [Client] wraps net/http with:
//   - Response caching through any [cache.Cache] backend
//   - Retry with exponential backoff for transient failures (see [httputil.Retry])
//   - Default request headers
//   - Request, response and cache events reported to [observability] hooks
//
// Host-specific helpers live in subpackages:
//
//   - [github]: rewrites github.com blob links to raw file URLs and
//     authenticates downloads from private repositories
//
// # Client Pattern
//
//	client := integrations.NewClient(backend, "license:", cache.DefaultTTL, nil)
//	var text string
//	err := client.Cached(ctx, url, false, &text, func() (err error) {
//	    text, err = client.GetText(ctx, url)
//	    return err
//	})
//
// # Errors
//
// A 404 yields [ErrNotFound]. Network failures, 429 and 5xx responses yield
// [ErrNetwork] wrapped in a retryable error; other statuses yield a plain
// [ErrNetwork].
package integrations
