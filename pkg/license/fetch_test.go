package license

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/matzehuels/noticecheck/pkg/cache"
	"github.com/matzehuels/noticecheck/pkg/errors"
)

func TestRemoteFetcher_HTTP(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("Permission is hereby granted"))
	}))
	defer server.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := NewRemoteFetcher(backend, FetchOptions{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		text, err := f.Fetch(ctx, server.URL+"/LICENSE")
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if text != "Permission is hereby granted" {
			t.Errorf("Fetch() = %q", text)
		}
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1 (second fetch cached)", calls)
	}

	if _, err := f.Fetch(ctx, server.URL+"/missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Fetch(missing) error = %v, want code %v", err, errors.ErrCodeNotFound)
	}
}

func TestRemoteFetcher_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := NewRemoteFetcher(nil, FetchOptions{})
	if _, err := f.Fetch(context.Background(), server.URL); !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("Fetch() error = %v, want code %v", err, errors.ErrCodeNetwork)
	}
}

func TestRemoteFetcher_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LICENSE")
	writeFile(t, path, "local license")

	f := NewRemoteFetcher(nil, FetchOptions{})
	text, err := f.Fetch(context.Background(), "file://"+filepath.ToSlash(path))
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if text != "local license" {
		t.Errorf("Fetch() = %q", text)
	}
}

func TestRemoteFetcher_UnsupportedScheme(t *testing.T) {
	f := NewRemoteFetcher(nil, FetchOptions{})
	if _, err := f.Fetch(context.Background(), "ftp://example.com/LICENSE"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Fetch() error = %v, want code %v", err, errors.ErrCodeInvalidInput)
	}
}
