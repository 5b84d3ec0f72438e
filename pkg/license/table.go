package license

import (
	"context"

	"github.com/matzehuels/noticecheck/pkg/errors"
)

// Entry is an override with its full text loaded. Exactly one of License
// and Text is set.
type Entry struct {
	Name    string
	License string
	Text    string
}

// Table holds overrides keyed by dependency name. A nil *Table is empty.
type Table struct {
	entries map[string]Entry
}

// NewTable builds a table, rejecting malformed or duplicate entries.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		switch {
		case e.License != "" && e.Text != "":
			return nil, errors.New(errors.ErrCodeInvalidOverride, "override %q sets both license and license text", e.Name)
		case e.License == "" && e.Text == "":
			return nil, errors.New(errors.ErrCodeInvalidOverride, "override %q has neither license nor license text", e.Name)
		}
		if _, dup := t.entries[e.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidOverride, "duplicate override for %q", e.Name)
		}
		t.entries[e.Name] = e
	}
	return t, nil
}

// Lookup returns the override for name.
func (t *Table) Lookup(name string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	e, ok := t.entries[name]
	return e, ok
}

// Len returns the number of overrides.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Overrides loads every full-text source of the configured overrides and
// returns them as a table. Inline text is used as is, text_file is read
// relative to the configuration directory, and license_file_url goes
// through f. Any failure aborts the load.
func (c *Config) Overrides(ctx context.Context, f Fetcher) (*Table, error) {
	entries := make([]Entry, 0, len(c.Packages))
	for _, o := range c.Packages {
		e := Entry{Name: o.Name, License: o.License, Text: o.Text}
		switch {
		case o.TextFile != "":
			text, err := readText(c.path(o.TextFile))
			if err != nil {
				return nil, err
			}
			e.Text = text
		case o.TextURL != "":
			if f == nil {
				return nil, errors.New(errors.ErrCodeInvalidConfig, "override %q needs a download but no fetcher is configured", o.Name)
			}
			text, err := f.Fetch(ctx, o.TextURL)
			if err != nil {
				return nil, err
			}
			if text == "" {
				return nil, errors.New(errors.ErrCodeInvalidOverride, "license text for %q at %s is empty", o.Name, o.TextURL)
			}
			e.Text = text
		}
		entries = append(entries, e)
	}
	return NewTable(entries...)
}
