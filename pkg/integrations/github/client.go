package github

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/matzehuels/noticecheck/pkg/cache"
	"github.com/matzehuels/noticecheck/pkg/integrations"
)

const rawBaseURL = "https://raw.githubusercontent.com"

var blobURLPattern = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([^/]+)/([^/]+)/(?:blob|raw)/([^/]+)/(.+?)(?:[?#].*)?$`)

// File identifies a file at a given ref of a GitHub repository.
type File struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
}

// ParseBlobURL extracts the file a github.com blob or raw link points at,
// e.g. https://github.com/owner/repo/blob/main/LICENSE.
// Returns ok=false for any other URL.
func ParseBlobURL(u string) (f File, ok bool) {
	m := blobURLPattern.FindStringSubmatch(u)
	if m == nil {
		return File{}, false
	}
	return File{Owner: m[1], Repo: m[2], Ref: m[3], Path: m[4]}, true
}

// Client downloads raw files from GitHub repositories.
// It handles caching, automatic retries, and optional authentication.
type Client struct {
	*integrations.Client
	rawURL string
}

// NewClient creates a GitHub client with optional authentication.
// Pass an empty string for token to use unauthenticated requests; a token is
// needed for files in private repositories.
func NewClient(backend cache.Cache, token string, ttl time.Duration) *Client {
	headers := map[string]string{"Accept": "text/plain"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		Client: integrations.NewClient(backend, "github:", ttl, headers),
		rawURL: rawBaseURL,
	}
}

// FetchFile returns the contents of f. If refresh is true, cached data is
// bypassed.
func (c *Client) FetchFile(ctx context.Context, f File, refresh bool) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/%s/%s", c.rawURL, f.Owner, f.Repo, f.Ref, f.Path)

	var text string
	err := c.Cached(ctx, url, refresh, &text, func() (err error) {
		text, err = c.GetText(ctx, url)
		return err
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", fmt.Errorf("%w: github file %s/%s@%s:%s", err, f.Owner, f.Repo, f.Ref, f.Path)
		}
		return "", err
	}
	return text, nil
}
