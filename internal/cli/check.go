package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/noticecheck/pkg/integrations"
	"github.com/matzehuels/noticecheck/pkg/pipeline"
)

// checkFlags holds the command-line flags shared by the check commands.
type checkFlags struct {
	name     string        // notice file name without .txt
	config   string        // override configuration (noticecheck.toml)
	licenses string        // bundled license library directory
	match    string        // bundled license matching: substring or tokens
	noFail   bool          // report a changed notice without failing
	noCache  bool          // disable the license-text cache
	refresh  bool          // ignore cached license texts
	cacheURL string        // redis:// URL of a shared cache
	timeout  time.Duration // per-download timeout
	retries  int           // retries for transient download failures

	// cargo
	metadata      string // captured `cargo metadata` output
	skipWorkspace bool   // leave workspace members out

	// npm
	lockfile string // package-lock.json marking dev packages
}

func newCheckFlags() *checkFlags {
	return &checkFlags{
		name:     pipeline.DefaultName,
		licenses: pipeline.DefaultLicenseDir,
		match:    pipeline.DefaultMatch,
		timeout:  integrations.DefaultTimeout,
	}
}

// register adds the flags that apply to ecosystem ("" registers all).
func (f *checkFlags) register(cmd *cobra.Command, ecosystem string) {
	// Common flags
	cmd.Flags().StringVar(&f.name, "name", f.name, "notice file name without the .txt extension")
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "override configuration (default: noticecheck.toml next to the input, if present)")
	cmd.Flags().StringVar(&f.licenses, "licenses", f.licenses, "bundled license library directory")
	cmd.Flags().StringVar(&f.match, "match", f.match, "bundled license matching: substring (default), tokens")
	cmd.Flags().BoolVar(&f.noFail, "no-fail", false, "exit 0 even when the notice changed")

	// Download flags
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the license-text cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "download license texts even when cached")
	cmd.Flags().StringVar(&f.cacheURL, "cache-url", "", "shared cache, e.g. redis://localhost:6379/0 (default: $"+envCacheURL+" or local files)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", f.timeout, "timeout for each license-text download")
	cmd.Flags().IntVar(&f.retries, "retries", 0, "retries for transient download failures")

	if ecosystem == "" || ecosystem == pipeline.EcosystemCargo {
		cmd.Flags().StringVar(&f.metadata, "metadata", "", "use captured 'cargo metadata --format-version 1' output instead of running cargo")
		cmd.Flags().BoolVar(&f.skipWorkspace, "skip-workspace", false, "leave workspace members out of the notice")
	}
	if ecosystem == "" || ecosystem == pipeline.EcosystemNPM {
		cmd.Flags().StringVar(&f.lockfile, "lockfile", "", "package-lock.json whose dev packages are left out")
	}
}

// options converts the flags into pipeline options.
func (f *checkFlags) options(ecosystem, input string) pipeline.Options {
	return pipeline.Options{
		Ecosystem:     ecosystem,
		Input:         input,
		MetadataFile:  f.metadata,
		SkipWorkspace: f.skipWorkspace,
		Lockfile:      f.lockfile,
		ConfigPath:    f.config,
		Timeout:       f.timeout,
		Retries:       f.retries,
		GitHubToken:   os.Getenv(envGitHubToken),
		Refresh:       f.refresh,
		Name:          f.name,
		LicenseDir:    f.licenses,
		Match:         f.match,
	}
}

// cargoCommand creates the cargo command.
func (c *CLI) cargoCommand() *cobra.Command {
	flags := newCheckFlags()
	cmd := &cobra.Command{
		Use:   "cargo <Cargo.toml>",
		Short: "Check the third-party notice of a Cargo project",
		Long: `Check the third-party notice of a Cargo project.

Runs 'cargo metadata' on the manifest and lists every crate of the resolved
graph, including dev and build dependencies. The notice is written next to the
manifest; the command fails when it differs from the committed one.`,
		Example: `  noticecheck cargo Cargo.toml
  noticecheck cargo --metadata metadata.json --skip-workspace Cargo.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), flags.options(pipeline.EcosystemCargo, args[0]), flags)
		},
	}
	flags.register(cmd, pipeline.EcosystemCargo)
	return cmd
}

// npmCommand creates the npm command.
func (c *CLI) npmCommand() *cobra.Command {
	flags := newCheckFlags()
	cmd := &cobra.Command{
		Use:   "npm <node_modules>",
		Short: "Check the third-party notice of an installed npm project",
		Long: `Check the third-party notice of an installed npm project.

Walks the node_modules directory and lists every package.json beneath it.
With --lockfile, packages marked "dev" in package-lock.json are left out.
The notice is written next to node_modules.`,
		Example: `  noticecheck npm node_modules
  noticecheck npm --lockfile package-lock.json node_modules`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), flags.options(pipeline.EcosystemNPM, args[0]), flags)
		},
	}
	flags.register(cmd, pipeline.EcosystemNPM)
	return cmd
}

// checkCommand creates the check command, which picks the ecosystem from
// the input path.
func (c *CLI) checkCommand() *cobra.Command {
	flags := newCheckFlags()
	cmd := &cobra.Command{
		Use:   "check <Cargo.toml|node_modules>",
		Short: "Check the third-party notice, detecting the ecosystem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), flags.options("", args[0]), flags)
		},
	}
	flags.register(cmd, "")
	return cmd
}

// runCheck executes the pipeline and reports the outcome.
func (c *CLI) runCheck(ctx context.Context, opts pipeline.Options, flags *checkFlags) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, flags.noCache, flags.cacheURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = logger
	opts.Printer = diffPrinter{w: c.Out}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	report := result.Report
	prog.done("Checked " + filepath.Base(report.Path))

	switch {
	case report.Baseline:
		printSuccess(c.Out, "Created notice")
		printFile(c.Out, report.Path)
		printStats(c.Out, result.Stats)
		printNextStep(c.Out, "Commit it", "git add "+report.Path)
	case report.Changed:
		printWarning(c.Out, "Notice changed (+%d -%d lines)", report.Stats.Added, report.Stats.Removed)
		printFile(c.Out, report.Path)
		printStats(c.Out, result.Stats)
		printNextStep(c.Out, "Review and commit", "git diff "+report.Path)
		if !flags.noFail {
			return ErrNoticeChanged
		}
	default:
		printSuccess(c.Out, "Notice up to date")
		printFile(c.Out, report.Path)
		printStats(c.Out, result.Stats)
	}
	return nil
}
