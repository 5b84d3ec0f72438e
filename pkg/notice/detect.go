package notice

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/noticecheck/pkg/errors"
)

// DiffPrinter shows the difference between the committed notice and the
// fresh one.
type DiffPrinter interface {
	PrintDiff(unified string, stats DiffStats)
}

// DiffPrinterFunc adapts a function to [DiffPrinter].
type DiffPrinterFunc func(unified string, stats DiffStats)

// PrintDiff implements [DiffPrinter].
func (f DiffPrinterFunc) PrintDiff(unified string, stats DiffStats) { f(unified, stats) }

// Report is the outcome of a [Detector.Check].
type Report struct {
	Path     string    // The notice file, now holding the fresh document
	Changed  bool      // The committed notice differed from the fresh one
	Baseline bool      // No notice existed before this run
	Stats    DiffStats // Changed line counts when Changed is set
}

// Detector compares a freshly rendered notice with the committed one and
// replaces it.
type Detector struct {
	Printer DiffPrinter          // Receives the diff when the notice changed; may be nil
	Logger  func(string, ...any) // Debug output; may be nil
}

// NewPath returns the staging path for path: "dir/Notice.txt" becomes
// "dir/Notice-new.txt".
func NewPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-new" + ext
}

// Check writes doc next to path, compares it with the document at path
// ignoring carriage returns, and then moves it over path. A missing
// document at path is a baseline run and reports no change. The file at
// path is replaced on every run.
func (d *Detector) Check(path string, doc []byte) (*Report, error) {
	logf := d.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}

	staged := NewPath(path)
	if err := os.WriteFile(staged, doc, 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "write %s", staged)
	}

	report := &Report{Path: path}
	old, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		report.Baseline = true
		logf("no previous notice at %s, creating baseline", path)
	case err != nil:
		_ = os.Remove(staged)
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	default:
		before, after := normalize(string(old)), normalize(string(doc))
		if before != after {
			report.Changed = true
			d.report(report, path, staged, before, after, logf)
		}
	}

	if err := os.Rename(staged, path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "replace %s", path)
	}
	return report, nil
}

func (d *Detector) report(r *Report, path, staged, before, after string, logf func(string, ...any)) {
	unified, err := UnifiedDiff(before, after, filepath.Base(path), filepath.Base(staged))
	if err != nil {
		logf("diff of %s unavailable: %v", path, err)
		return
	}
	if r.Stats, err = Stats(unified); err != nil {
		logf("diff stats of %s unavailable: %v", path, err)
	}
	logf("%s: +%d -%d lines", path, r.Stats.Added, r.Stats.Removed)
	if d.Printer != nil {
		d.Printer.PrintDiff(unified, r.Stats)
	}
}
