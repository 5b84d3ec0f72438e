package notice

import (
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// DiffContext is the number of unchanged lines shown around each change.
const DiffContext = 3

// DiffStats counts the changed lines of a unified diff.
type DiffStats struct {
	Added   int
	Removed int
}

// UnifiedDiff returns a line-oriented unified diff from old to new, or ""
// when they are equal.
func UnifiedDiff(old, new, fromFile, toFile string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(old),
		B:        difflib.SplitLines(new),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  DiffContext,
	})
}

// Stats parses a single-file unified diff and counts the added and removed
// lines of its hunks.
func Stats(unified string) (DiffStats, error) {
	var stats DiffStats
	if unified == "" {
		return stats, nil
	}

	fd, err := diff.ParseFileDiff([]byte(unified))
	if err != nil {
		return stats, err
	}
	for _, hunk := range fd.Hunks {
		for _, line := range bytes.Split(hunk.Body, []byte("\n")) {
			switch {
			case bytes.HasPrefix(line, []byte("+")):
				stats.Added++
			case bytes.HasPrefix(line, []byte("-")):
				stats.Removed++
			}
		}
	}
	return stats, nil
}

// normalize strips carriage returns so that CRLF checkouts compare equal
// to LF ones.
func normalize(s string) string {
	return strings.ReplaceAll(s, "\r", "")
}
