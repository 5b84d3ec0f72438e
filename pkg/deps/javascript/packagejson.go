package javascript

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/noticecheck/pkg/deps"
	"github.com/matzehuels/noticecheck/pkg/errors"
)

const manifestName = "package.json"

// ModuleTree walks an installed module tree (typically node_modules) and
// turns every package.json beneath it into a dependency record.
//
// Files that do not decode as a package manifest with a name, version and
// string license are skipped; such files are common in module trees
// (workspace metadata, test fixtures, partial manifests).
type ModuleTree struct {
	Root     string       // Directory to walk
	Lockfile string       // package-lock.json; when set, dev-only packages are excluded
	Options  deps.Options // Logger
}

// NewModuleTree returns an adapter that lists every package under root.
func NewModuleTree(root string) *ModuleTree {
	return &ModuleTree{Root: root}
}

// NewProductionTree returns an adapter that lists every package under root
// except those marked "dev" in the given package-lock.json.
func NewProductionTree(root, lockfile string) *ModuleTree {
	return &ModuleTree{Root: root, Lockfile: lockfile}
}

// Name returns "npm".
func (m *ModuleTree) Name() string { return "npm" }

// Records walks the tree in lexical order.
func (m *ModuleTree) Records(ctx context.Context) ([]deps.Record, error) {
	opts := m.Options.WithDefaults()

	var dev map[string]bool
	if m.Lockfile != "" {
		var err error
		if dev, err = DevPackages(m.Lockfile, opts); err != nil {
			return nil, err
		}
	}

	var records []deps.Record
	err := filepath.WalkDir(m.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || d.Name() != manifestName {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rec, err := parseManifest(data)
		if err != nil {
			opts.Logger("skip %s: %v", path, err)
			return nil
		}
		if dev[rec.Name] {
			opts.Logger("skip dev package %s", rec)
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "walk %s", m.Root)
	}

	return deps.Dedupe(records), nil
}

type packageManifest struct {
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	License    string          `json:"license"`
	Repository json.RawMessage `json:"repository"`
}

func parseManifest(data []byte) (deps.Record, error) {
	var pkg packageManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		return deps.Record{}, err
	}
	switch {
	case pkg.Name == "":
		return deps.Record{}, fmt.Errorf("missing name")
	case pkg.Version == "":
		return deps.Record{}, fmt.Errorf("missing version")
	case pkg.License == "":
		return deps.Record{}, fmt.Errorf("missing license")
	}

	repo, err := repositoryURL(pkg.Repository)
	if err != nil {
		return deps.Record{}, err
	}
	return deps.Record{
		Name:       pkg.Name,
		Version:    pkg.Version,
		Repository: repo,
		License:    pkg.License,
	}, nil
}

// repositoryURL accepts the two shapes npm allows for "repository": a
// plain string or an object with a "url" field.
func repositoryURL(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var obj struct {
		URL *string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.URL == nil {
		return "", fmt.Errorf("invalid repository type")
	}
	return *obj.URL, nil
}
