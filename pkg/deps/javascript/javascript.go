package javascript

import (
	"github.com/matzehuels/noticecheck/pkg/deps"
)

// Ecosystem accepts an installed node_modules directory.
var Ecosystem = &deps.Ecosystem{
	Name:   "npm",
	Inputs: []string{"node_modules/"},
	Supports: func(base string, dir bool) bool {
		return dir && base == "node_modules"
	},
}
