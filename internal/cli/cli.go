// Package cli implements the noticecheck command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/noticecheck/pkg/buildinfo"
	"github.com/matzehuels/noticecheck/pkg/cache"
	pkgerrors "github.com/matzehuels/noticecheck/pkg/errors"
	"github.com/matzehuels/noticecheck/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = buildinfo.Name

	// envGitHubToken names the variable holding credentials for github.com
	// license links.
	envGitHubToken = "GITHUB_TOKEN"

	// envCacheURL names the variable that selects a shared cache when
	// --cache-url is not given.
	envCacheURL = "NOTICECHECK_CACHE_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Process exit codes. See [ExitCode].
const (
	ExitOK       = 0
	ExitChanged  = 1
	ExitError    = 2
	ExitCanceled = 130 // Standard shell convention for SIGINT
)

// ErrNoticeChanged is returned by the check commands when the committed
// notice differed from the freshly rendered one.
var ErrNoticeChanged = errors.New("third-party notice changed")

// ExitCode maps the error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNoticeChanged):
		return ExitChanged
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	default:
		return ExitError
	}
}

// ErrorMessage returns the text to print for the error returned by a
// command, without the error code. It is empty when nothing should be
// printed: a changed notice was already reported with its diff, and an
// interrupted run needs no message.
func ErrorMessage(err error) string {
	if err == nil || errors.Is(err, ErrNoticeChanged) || errors.Is(err, context.Canceled) {
		return ""
	}
	return pkgerrors.UserMessage(err)
}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // Diffs and status lines
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Noticecheck keeps third-party license notices up to date",
		Long: `Noticecheck generates a third-party notice file from a project's resolved
dependencies, resolves each dependency's license (with curated overrides), and
fails when the committed notice is out of date so CI can catch drift.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			registerHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.cargoCommand())
	root.AddCommand(c.npmCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, cacheURL string) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache, cacheURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, c.Logger), nil
}

// newCache selects the cache backend: none with --no-cache, Redis when a
// cache URL is given, and the local file cache otherwise. A file cache that
// cannot be created disables caching instead of failing the run.
func (c *CLI) newCache(ctx context.Context, noCache bool, cacheURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cacheURL == "" {
		cacheURL = os.Getenv(envCacheURL)
	}
	if cacheURL != "" {
		rc, err := cache.NewRedisCache(ctx, cacheURL)
		if err != nil {
			return nil, fmt.Errorf("connect cache %s: %w", cacheURL, err)
		}
		return rc, nil
	}
	fc, err := cache.NewFileCache("")
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}
