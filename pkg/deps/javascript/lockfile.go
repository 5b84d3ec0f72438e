package javascript

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/matzehuels/noticecheck/pkg/deps"
	"github.com/matzehuels/noticecheck/pkg/errors"
)

// packageLock represents the parts of package-lock.json that flag
// development-only packages.
type packageLock struct {
	// V2/V3 format, keyed by install path ("node_modules/a/node_modules/b")
	Packages map[string]struct {
		Dev bool `json:"dev"`
	} `json:"packages"`
	// V1 format, keyed by package name
	Dependencies map[string]struct {
		Dev bool `json:"dev"`
	} `json:"dependencies"`
}

// DevPackages returns the names of packages marked "dev" in a
// package-lock.json. A lockfile that cannot be read is an error; one that
// does not decode yields an empty set.
func DevPackages(path string, opts deps.Options) (map[string]bool, error) {
	opts = opts.WithDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read lockfile")
	}

	var lock packageLock
	if err := json.Unmarshal(data, &lock); err != nil {
		opts.Logger("lockfile %s not understood, no packages excluded: %v", path, err)
		return map[string]bool{}, nil
	}

	dev := make(map[string]bool)
	for p, mod := range lock.Packages {
		if !mod.Dev {
			continue
		}
		if name := installName(p); name != "" {
			dev[name] = true
		}
	}
	for name, mod := range lock.Dependencies {
		if mod.Dev {
			dev[name] = true
		}
	}
	return dev, nil
}

// installName extracts the package name from an install path like
// "node_modules/@types/node" or "node_modules/a/node_modules/b".
func installName(p string) string {
	const marker = "node_modules/"
	if i := strings.LastIndex(p, marker); i >= 0 {
		return p[i+len(marker):]
	}
	return p
}
