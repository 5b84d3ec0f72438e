package license

import (
	"context"
	stderrors "errors"
	"net/url"
	"time"

	"github.com/matzehuels/noticecheck/pkg/cache"
	"github.com/matzehuels/noticecheck/pkg/errors"
	"github.com/matzehuels/noticecheck/pkg/integrations"
	"github.com/matzehuels/noticecheck/pkg/integrations/github"
)

// Fetcher retrieves the license text a URL points at.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to [Fetcher].
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch implements [Fetcher].
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }

// FetchOptions configures [NewRemoteFetcher].
type FetchOptions struct {
	Timeout     time.Duration // Per-request timeout (default integrations.DefaultTimeout)
	Retries     int           // Retries for transient failures (default 0)
	GitHubToken string        // Sent with github.com downloads
	Refresh     bool          // Ignore cached texts
}

// RemoteFetcher downloads texts over HTTP(S) and reads file:// URLs from
// disk. Links to files on github.com are rewritten to their raw form.
type RemoteFetcher struct {
	client  *integrations.Client
	github  *github.Client
	refresh bool
}

// NewRemoteFetcher creates a fetcher whose downloads are cached in backend.
// A nil backend disables caching.
func NewRemoteFetcher(backend cache.Cache, opts FetchOptions) *RemoteFetcher {
	client := integrations.NewClient(backend, "license:", cache.DefaultTTL, map[string]string{"Accept": "text/plain"})
	gh := github.NewClient(backend, opts.GitHubToken, cache.DefaultTTL)
	for _, c := range []*integrations.Client{client, gh.Client} {
		c.SetTimeout(opts.Timeout)
		c.SetRetries(opts.Retries)
	}
	return &RemoteFetcher{client: client, github: gh, refresh: opts.Refresh}
}

// Fetch implements [Fetcher].
func (f *RemoteFetcher) Fetch(ctx context.Context, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse license URL")
	}

	switch u.Scheme {
	case "file":
		return readText(u.Path)
	case "http", "https":
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unsupported license URL scheme: %q", raw)
	}

	if file, ok := github.ParseBlobURL(raw); ok {
		text, err := f.github.FetchFile(ctx, file, f.refresh)
		return text, fetchError(err, raw)
	}

	var text string
	err = f.client.Cached(ctx, raw, f.refresh, &text, func() (err error) {
		text, err = f.client.GetText(ctx, raw)
		return err
	})
	return text, fetchError(err, raw)
}

func fetchError(err error, raw string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, integrations.ErrNotFound):
		return errors.Wrap(errors.ErrCodeNotFound, err, "fetch %s", raw)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", raw)
	}
}
