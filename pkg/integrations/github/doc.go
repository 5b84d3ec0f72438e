// Package github downloads license files hosted on GitHub.
//
// # Overview
//
// Override configuration often points license_file_url at the page GitHub
// shows for a file (https://github.com/owner/repo/blob/main/LICENSE). That
// page is HTML, so [ParseBlobURL] recognizes such links and [Client.FetchFile]
// downloads the raw file from raw.githubusercontent.com instead.
//
// # Usage
//
//	client := github.NewClient(backend, os.Getenv("GITHUB_TOKEN"), cache.DefaultTTL)
//	if f, ok := github.ParseBlobURL(url); ok {
//	    text, err := client.FetchFile(ctx, f, false)
//	}
//
// # Authentication
//
// A token is optional. It is sent as a bearer token and is required for
// files in private repositories.
//
// # Caching
//
// Downloads are cached under the "github:" prefix. Pass refresh=true to
// bypass the cache.
package github
