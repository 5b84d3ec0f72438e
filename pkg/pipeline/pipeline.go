// Package pipeline provides the notice check shared by every CLI command.
//
// This package implements the complete collect → resolve → render → detect
// pipeline. By centralizing this logic, the cargo and npm commands behave
// identically past the point where dependencies are listed.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Collect: list dependency records with an ecosystem adapter
//  2. Resolve: apply overrides and decide each dependency's license
//  3. Render: write the notice with the matching bundled license texts
//  4. Detect: compare with the committed notice and replace it
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Ecosystem: "cargo",
//	    Input:     "Cargo.toml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Report.Changed {
//	    os.Exit(1)
//	}
package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticecheck/pkg/deps"
	"github.com/matzehuels/noticecheck/pkg/deps/javascript"
	"github.com/matzehuels/noticecheck/pkg/deps/rust"
	"github.com/matzehuels/noticecheck/pkg/errors"
	"github.com/matzehuels/noticecheck/pkg/license"
	"github.com/matzehuels/noticecheck/pkg/notice"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultName is the notice file name without extension.
	DefaultName = "ThirdPartyNotice"

	// DefaultLicenseDir is the bundled license library directory.
	DefaultLicenseDir = license.DefaultLibraryDir

	// DefaultMatch is the bundled license matching mode.
	DefaultMatch = "substring"
)

// Ecosystem names accepted in [Options].
const (
	EcosystemCargo = "cargo"
	EcosystemNPM   = "npm"
)

// Ecosystems lists the supported ecosystems in detection order.
var Ecosystems = []*deps.Ecosystem{rust.Ecosystem, javascript.Ecosystem}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one notice check.
type Options struct {
	// Collect options
	Ecosystem     string // "cargo" or "npm"; detected from Input when empty
	Input         string // Cargo.toml or node_modules directory
	MetadataFile  string // cargo: captured `cargo metadata` output
	SkipWorkspace bool   // cargo: leave workspace members out
	Lockfile      string // npm: package-lock.json marking dev packages

	// Resolve options
	ConfigPath  string        // Override configuration; noticecheck.toml next to Input when empty
	Timeout     time.Duration // Per-download timeout for remote license texts
	Retries     int           // Retries for transient download failures
	GitHubToken string        // Credentials for github.com license links
	Refresh     bool          // Ignore cached license texts

	// Render options
	Name       string // Notice file name without extension
	LicenseDir string // Bundled license library
	Match      string // "substring" or "tokens"

	// Runtime options
	Logger  *log.Logger
	Fetcher license.Fetcher    // Replaces the default remote fetcher
	Printer notice.DiffPrinter // Receives the diff when the notice changed
	Cargo   rust.Runner        // Replaces the cargo subprocess

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Report is the change detection outcome.
	Report *notice.Report

	// Document is the rendered notice.
	Document []byte

	// Resolution is the per-dependency license decision.
	Resolution *license.Resolution

	// Bundled lists the library entries included in the notice.
	Bundled []license.Bundled

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records     int
	Licenses    int
	Bundled     int
	CollectTime time.Duration
	ResolveTime time.Duration
	DetectTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateEcosystem checks that an ecosystem name is supported.
func ValidateEcosystem(name string) error {
	switch name {
	case EcosystemCargo, EcosystemNPM:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid ecosystem: %q (must be one of: cargo, npm)", name)
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input path is required")
	}
	if o.Ecosystem == "" {
		eco, err := deps.Detect(o.Input, Ecosystems...)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "detect ecosystem")
		}
		o.Ecosystem = eco.Name
	}
	if err := ValidateEcosystem(o.Ecosystem); err != nil {
		return err
	}

	if o.Name == "" {
		o.Name = DefaultName
	}
	if err := errors.ValidateNoticeName(o.Name); err != nil {
		return err
	}
	if o.LicenseDir == "" {
		o.LicenseDir = DefaultLicenseDir
	}
	if o.Match == "" {
		o.Match = DefaultMatch
	}
	if _, err := license.ParseMatchMode(o.Match); err != nil {
		return err
	}
	if o.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "retries must not be negative")
	}
	if o.ConfigPath == "" {
		if p := filepath.Join(o.Dir(), license.DefaultConfigFile); fileExists(p) {
			o.ConfigPath = p
		}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}

	o.validated = true
	return nil
}

// Dir returns the directory that holds the notice: the parent of Input.
func (o *Options) Dir() string {
	return filepath.Dir(filepath.Clean(o.Input))
}

// OutputPath returns <Dir>/<Name>.txt.
func (o *Options) OutputPath() string {
	name := o.Name
	if name == "" {
		name = DefaultName
	}
	return filepath.Join(o.Dir(), name+".txt")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
