package rust

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/matzehuels/noticecheck/pkg/deps"
	"github.com/matzehuels/noticecheck/pkg/errors"
)

// Runner executes the cargo binary and returns its standard output.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs cargo as a subprocess. Binary defaults to $CARGO, then
// "cargo" on PATH.
type ExecRunner struct {
	Binary string
}

// Run implements [Runner].
func (r ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	bin := r.Binary
	if bin == "" {
		bin = os.Getenv("CARGO")
	}
	if bin == "" {
		bin = "cargo"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// CargoMetadata lists every crate in the resolved graph of a Cargo
// manifest, including dev and build dependencies at any depth.
type CargoMetadata struct {
	Manifest      string       // Path to Cargo.toml
	MetadataFile  string       // Pre-captured `cargo metadata` output; skips running cargo
	SkipWorkspace bool         // Leave workspace members out of the output
	Runner        Runner       // Defaults to ExecRunner
	Options       deps.Options // Logger
}

// Name returns "cargo".
func (c *CargoMetadata) Name() string { return "cargo" }

// Records runs the resolver and converts its output. Crates are ordered
// by name, then version ascending; every resolved version is listed.
func (c *CargoMetadata) Records(ctx context.Context) ([]deps.Record, error) {
	opts := c.Options.WithDefaults()

	raw, err := c.metadata(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := ParseMetadata(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResolverFailed, err, "decode cargo metadata for %s", c.Manifest)
	}

	records, err := meta.Records(c.SkipWorkspace)
	if err != nil {
		return nil, err
	}
	opts.Logger("cargo metadata: %d packages, %d records", len(meta.Packages), len(records))
	return records, nil
}

func (c *CargoMetadata) metadata(ctx context.Context) ([]byte, error) {
	if c.MetadataFile != "" {
		data, err := os.ReadFile(c.MetadataFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "read cargo metadata")
		}
		return data, nil
	}

	runner := c.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	out, err := runner.Run(ctx, "metadata", "--format-version", "1", "--manifest-path", c.Manifest)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeResolverFailed, err, "cargo metadata --manifest-path %s", c.Manifest)
	}
	return out, nil
}

// Metadata is the subset of `cargo metadata --format-version 1` output
// used to build records.
type Metadata struct {
	Packages         []Package `json:"packages"`
	WorkspaceMembers []string  `json:"workspace_members"`
	Resolve          *struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	} `json:"resolve"`
}

// Package is one crate entry of the metadata. Null JSON values decode to
// empty strings.
type Package struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Version      string `json:"version"`
	License      string `json:"license"`
	LicenseFile  string `json:"license_file"`
	Repository   string `json:"repository"`
	ManifestPath string `json:"manifest_path"`
}

// ParseMetadata decodes `cargo metadata` JSON output.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	var m Metadata
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Records converts the packages of the resolved graph to dependency
// records. When the metadata carries no resolve section (cargo --no-deps),
// every listed package is used.
//
// A crate with neither a license nor a license file yields an
// [deps.UnlicensedError].
func (m *Metadata) Records(skipWorkspace bool) ([]deps.Record, error) {
	var inGraph map[string]bool
	if m.Resolve != nil {
		inGraph = make(map[string]bool, len(m.Resolve.Nodes))
		for _, n := range m.Resolve.Nodes {
			inGraph[n.ID] = true
		}
	}
	members := make(map[string]bool, len(m.WorkspaceMembers))
	for _, id := range m.WorkspaceMembers {
		members[id] = true
	}

	pkgs := make([]Package, 0, len(m.Packages))
	for _, p := range m.Packages {
		if inGraph != nil && !inGraph[p.ID] {
			continue
		}
		if skipWorkspace && members[p.ID] {
			continue
		}
		pkgs = append(pkgs, p)
	}

	sort.SliceStable(pkgs, func(i, j int) bool {
		if pkgs[i].Name != pkgs[j].Name {
			return pkgs[i].Name < pkgs[j].Name
		}
		return compareVersions(pkgs[i].Version, pkgs[j].Version) < 0
	})

	records := make([]deps.Record, 0, len(pkgs))
	for _, p := range pkgs {
		if p.License == "" && p.LicenseFile == "" {
			return nil, &deps.UnlicensedError{Name: p.Name}
		}
		records = append(records, p.record())
	}
	return deps.Dedupe(records), nil
}

func (p Package) record() deps.Record {
	r := deps.Record{
		Name:           p.Name,
		Version:        p.Version,
		Repository:     p.Repository,
		License:        p.License,
		HasLicenseFile: p.LicenseFile != "",
	}
	if r.HasLicenseFile {
		r.LicenseFile = p.LicenseFile
		if !filepath.IsAbs(r.LicenseFile) && p.ManifestPath != "" {
			r.LicenseFile = filepath.Join(filepath.Dir(p.ManifestPath), r.LicenseFile)
		}
	}
	return r
}

// compareVersions orders Cargo versions semantically. Versions that are not
// valid semver sort below valid ones and compare as strings among themselves.
func compareVersions(a, b string) int {
	va, vb := "v"+a, "v"+b
	okA, okB := semver.IsValid(va), semver.IsValid(vb)
	switch {
	case okA && okB:
		return semver.Compare(va, vb)
	case okA:
		return 1
	case okB:
		return -1
	default:
		return strings.Compare(a, b)
	}
}
