package deps

import (
	"context"
)

// Options configures adapter behavior.
type Options struct {
	Logger func(string, ...any) // Debug callback for skipped entries (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Record is the normalized fact about one third-party component.
//
// Records are produced fresh by an [Adapter] on every run and are not
// modified afterwards. Empty strings mean "absent" for Repository, License
// and LicenseFile.
type Record struct {
	Name           string // Package name
	Version        string // Resolved version
	Repository     string // Source repository URL
	License        string // Short license identifier (e.g. "MIT OR Apache-2.0")
	HasLicenseFile bool   // Resolver reports full license text shipped with the package
	LicenseFile    string // Local path of that text, when known
}

// String returns "name@version".
func (r Record) String() string {
	return r.Name + "@" + r.Version
}

// Adapter produces dependency records for one ecosystem.
type Adapter interface {
	// Name returns the adapter identifier (e.g., "cargo", "npm").
	Name() string
	// Records returns the dependency list in a stable order.
	Records(ctx context.Context) ([]Record, error)
}

// Dedupe drops records whose name and version were already seen, keeping
// the first occurrence. Different versions of one package are all kept.
// Order of the surviving records is preserved.
func Dedupe(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		key := r.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
