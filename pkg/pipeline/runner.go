package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticecheck/pkg/cache"
	"github.com/matzehuels/noticecheck/pkg/deps"
	"github.com/matzehuels/noticecheck/pkg/deps/javascript"
	"github.com/matzehuels/noticecheck/pkg/deps/rust"
	"github.com/matzehuels/noticecheck/pkg/license"
	"github.com/matzehuels/noticecheck/pkg/notice"
	"github.com/matzehuels/noticecheck/pkg/observability"
)

// Runner executes notice checks. The cache backs remote license downloads.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. If cache is nil, a NullCache is used
// (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete collect → resolve → render → detect pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Collect
	collectStart := time.Now()
	hooks.OnCollectStart(ctx, opts.Ecosystem, opts.Input)
	records, err := r.Collect(ctx, opts)
	result.Stats.CollectTime = time.Since(collectStart)
	hooks.OnCollectComplete(ctx, opts.Ecosystem, len(records), result.Stats.CollectTime, err)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	result.Stats.Records = len(records)

	opts.Logger.Info("collected dependencies",
		"ecosystem", opts.Ecosystem,
		"records", len(records),
		"duration", result.Stats.CollectTime)

	// Stage 2: Resolve
	resolveStart := time.Now()
	res, bundled, err := r.Resolve(ctx, records, opts)
	result.Stats.ResolveTime = time.Since(resolveStart)
	if err != nil {
		hooks.OnResolveComplete(ctx, 0, 0, result.Stats.ResolveTime, err)
		return nil, fmt.Errorf("resolve: %w", err)
	}
	hooks.OnResolveComplete(ctx, res.InUse.Len(), len(bundled), result.Stats.ResolveTime, nil)
	result.Resolution = res
	result.Bundled = bundled
	result.Stats.Licenses = res.InUse.Len()
	result.Stats.Bundled = len(bundled)

	opts.Logger.Info("resolved licenses",
		"in_use", res.InUse.Len(),
		"bundled", len(bundled),
		"additions", len(res.Additions),
		"duration", result.Stats.ResolveTime)

	// Stage 3: Render
	doc, err := notice.Document(res, bundled)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Document = doc

	// Stage 4: Detect
	detectStart := time.Now()
	path := opts.OutputPath()
	detector := &notice.Detector{Printer: opts.Printer, Logger: opts.Logger.Debugf}
	report, err := detector.Check(path, doc)
	result.Stats.DetectTime = time.Since(detectStart)
	hooks.OnDetectComplete(ctx, path, report != nil && report.Changed, result.Stats.DetectTime, err)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	result.Report = report

	opts.Logger.Info("checked notice",
		"path", path,
		"changed", report.Changed,
		"baseline", report.Baseline,
		"duration", result.Stats.DetectTime)

	return result, nil
}

// Collect lists the dependency records of opts.Input.
func (r *Runner) Collect(ctx context.Context, opts Options) ([]deps.Record, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	a, err := Adapter(opts)
	if err != nil {
		return nil, err
	}
	return a.Records(ctx)
}

// Adapter returns the ecosystem adapter configured by opts.
func Adapter(opts Options) (deps.Adapter, error) {
	if err := ValidateEcosystem(opts.Ecosystem); err != nil {
		return nil, err
	}
	var depOpts deps.Options
	if opts.Logger != nil {
		depOpts.Logger = opts.Logger.Debugf
	}

	switch opts.Ecosystem {
	case EcosystemCargo:
		return &rust.CargoMetadata{
			Manifest:      opts.Input,
			MetadataFile:  opts.MetadataFile,
			SkipWorkspace: opts.SkipWorkspace,
			Runner:        opts.Cargo,
			Options:       depOpts,
		}, nil
	default:
		tree := javascript.NewModuleTree(opts.Input)
		if opts.Lockfile != "" {
			tree = javascript.NewProductionTree(opts.Input, opts.Lockfile)
		}
		tree.Options = depOpts
		return tree, nil
	}
}

// Resolve applies the configured overrides and additions to records and
// selects the bundled license texts for the licenses in use.
func (r *Runner) Resolve(ctx context.Context, records []deps.Record, opts Options) (*license.Resolution, []license.Bundled, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	cfg := &license.Config{}
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = license.LoadConfig(opts.ConfigPath); err != nil {
			return nil, nil, err
		}
		opts.Logger.Debug("loaded license config",
			"path", opts.ConfigPath,
			"overrides", len(cfg.Packages),
			"additions", len(cfg.Additional))
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = license.NewRemoteFetcher(r.Cache, license.FetchOptions{
			Timeout:     opts.Timeout,
			Retries:     opts.Retries,
			GitHubToken: opts.GitHubToken,
			Refresh:     opts.Refresh,
		})
	}
	overrides, err := cfg.Overrides(ctx, fetcher)
	if err != nil {
		return nil, nil, err
	}
	additions, err := cfg.Additions()
	if err != nil {
		return nil, nil, err
	}

	files, err := license.ReadLicenseFiles(records, overrides)
	if err != nil {
		return nil, nil, err
	}
	resolver := &license.Resolver{Overrides: overrides, LicenseFiles: files}
	res, err := resolver.Resolve(records, additions)
	if err != nil {
		return nil, nil, err
	}

	lib, err := license.OpenLibrary(opts.LicenseDir)
	if err != nil {
		return nil, nil, err
	}
	mode, err := license.ParseMatchMode(opts.Match)
	if err != nil {
		return nil, nil, err
	}
	bundled, err := lib.Filter(res.InUse, mode)
	if err != nil {
		return nil, nil, err
	}
	return res, bundled, nil
}
