package deps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ecosystem describes one supported package ecosystem and the inputs it
// accepts. Adapter packages export a value of this type so the CLI can pick
// an ecosystem from a path without importing every adapter by hand.
type Ecosystem struct {
	Name     string                          // Ecosystem identifier (e.g., "cargo")
	Inputs   []string                        // Human-readable accepted inputs, for help text
	Supports func(base string, dir bool) bool // Reports whether a path belongs to this ecosystem
}

// Detect finds the ecosystem that supports the given path.
// Returns an error if the path does not exist or no ecosystem matches.
func Detect(path string, ecosystems ...*Ecosystem) (*Ecosystem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	for _, e := range ecosystems {
		if e.Supports(name, info.IsDir()) {
			return e, nil
		}
	}

	var inputs []string
	for _, e := range ecosystems {
		inputs = append(inputs, e.Inputs...)
	}
	return nil, fmt.Errorf("unsupported input: %s (supported: %s)", name, strings.Join(inputs, ", "))
}
