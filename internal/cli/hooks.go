package cli

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/noticecheck/pkg/observability"
)

var registerOnce sync.Once

// registerHooks routes pipeline, cache, and HTTP events to the debug log of
// the logger carried by each event's context.
func registerHooks() {
	registerOnce.Do(func() {
		h := logHooks{}
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
		observability.SetHTTPHooks(h)
	})
}

// logHooks implements every observability hook interface.
type logHooks struct{}

func (logHooks) OnCollectStart(ctx context.Context, ecosystem, input string) {
	loggerFromContext(ctx).Debug("collecting dependencies", "ecosystem", ecosystem, "input", input)
}

func (logHooks) OnCollectComplete(ctx context.Context, ecosystem string, records int, d time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("collect failed", "ecosystem", ecosystem, "duration", d, "error", err)
	}
}

func (logHooks) OnResolveComplete(ctx context.Context, licenses, bundled int, d time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("resolve failed", "duration", d, "error", err)
	}
}

func (logHooks) OnDetectComplete(ctx context.Context, path string, changed bool, d time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("detect failed", "path", path, "duration", d, "error", err)
	}
}

func (logHooks) OnCacheHit(ctx context.Context, key string) {
	loggerFromContext(ctx).Debug("cache hit", "key", key)
}

func (logHooks) OnCacheMiss(ctx context.Context, key string) {
	loggerFromContext(ctx).Debug("cache miss", "key", key)
}

func (logHooks) OnCacheSet(ctx context.Context, key string, size int) {
	loggerFromContext(ctx).Debug("cache set", "key", key, "bytes", size)
}

func (logHooks) OnRequest(ctx context.Context, method, host, path string) {
	loggerFromContext(ctx).Debug("http request", "method", method, "host", host, "path", path)
}

func (logHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	loggerFromContext(ctx).Debug("http response", "host", host, "path", path, "status", status, "duration", d)
}

func (logHooks) OnError(ctx context.Context, method, host, path string, err error) {
	loggerFromContext(ctx).Debug("http error", "host", host, "path", path, "error", err)
}
