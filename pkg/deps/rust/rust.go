package rust

import (
	"strings"

	"github.com/matzehuels/noticecheck/pkg/deps"
)

// Ecosystem accepts a Cargo.toml manifest.
var Ecosystem = &deps.Ecosystem{
	Name:   "cargo",
	Inputs: []string{"Cargo.toml"},
	Supports: func(base string, dir bool) bool {
		return !dir && strings.EqualFold(base, "cargo.toml")
	},
}
