package license

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/noticecheck/pkg/errors"
)

// DefaultConfigFile is looked up next to the input when --config is not given.
const DefaultConfigFile = "noticecheck.toml"

// Config is the curated override configuration:
//
//	[[package]]
//	name = "ring"
//	license_file_url = "https://github.com/briansmith/ring/blob/main/LICENSE"
//
//	[[additional]]
//	license = "MIT"
//	text_file = "notices/bundled-font.txt"
type Config struct {
	Packages   []Override       `toml:"package"`
	Additional []AdditionSource `toml:"additional"`

	// Dir resolves relative text_file paths. Set to the directory of the
	// configuration file by [LoadConfig].
	Dir string `toml:"-"`
}

// Override replaces the license a dependency reports. Exactly one of
// License or a full-text source (Text, TextFile, TextURL) is set.
type Override struct {
	Name     string `toml:"name"`
	License  string `toml:"license"`
	Text     string `toml:"text"`
	TextFile string `toml:"text_file"`
	TextURL  string `toml:"license_file_url"`
}

// AdditionSource is a manual notice entry not backed by any dependency.
type AdditionSource struct {
	License  string `toml:"license"`
	Text     string `toml:"text"`
	TextFile string `toml:"text_file"`
}

// LoadConfig reads and validates a configuration file. Keys the decoder
// does not recognize are rejected.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := ParseConfig(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a configuration. dir resolves relative
// text_file paths.
func ParseConfig(r io.Reader, dir string) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.Dir = dir
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every override and addition.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Packages))
	for _, o := range c.Packages {
		if err := o.Validate(); err != nil {
			return err
		}
		if seen[o.Name] {
			return errors.New(errors.ErrCodeInvalidOverride, "duplicate override for %q", o.Name)
		}
		seen[o.Name] = true
	}
	for i, a := range c.Additional {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("additional entry %d: %w", i+1, err)
		}
	}
	return nil
}

// Validate enforces that exactly one of License or a single full-text
// source is set.
func (o Override) Validate() error {
	if err := errors.ValidatePackageName(o.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOverride, err, "override")
	}

	sources := 0
	for _, s := range []string{o.Text, o.TextFile, o.TextURL} {
		if s != "" {
			sources++
		}
	}
	switch {
	case o.License != "" && sources > 0:
		return errors.New(errors.ErrCodeInvalidOverride, "override %q sets both license and license text", o.Name)
	case o.License == "" && sources == 0:
		return errors.New(errors.ErrCodeInvalidOverride, "override %q sets neither license nor license text", o.Name)
	case sources > 1:
		return errors.New(errors.ErrCodeInvalidOverride, "override %q sets more than one of text, text_file, license_file_url", o.Name)
	}

	if o.TextURL != "" {
		if err := errors.ValidateURL(o.TextURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOverride, err, "override %q", o.Name)
		}
	}
	return nil
}

// Validate enforces a license identifier and exactly one text source.
func (a AdditionSource) Validate() error {
	if strings.TrimSpace(a.License) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "license is required")
	}
	switch {
	case a.Text == "" && a.TextFile == "":
		return errors.New(errors.ErrCodeInvalidConfig, "one of text or text_file is required")
	case a.Text != "" && a.TextFile != "":
		return errors.New(errors.ErrCodeInvalidConfig, "text and text_file are mutually exclusive")
	}
	return nil
}

// Additions loads the text of every manual addition.
func (c *Config) Additions() ([]Addition, error) {
	out := make([]Addition, 0, len(c.Additional))
	for _, a := range c.Additional {
		text := a.Text
		if a.TextFile != "" {
			var err error
			if text, err = readText(c.path(a.TextFile)); err != nil {
				return nil, err
			}
		}
		out = append(out, Addition{License: a.License, Text: text})
	}
	return out, nil
}

func (c *Config) path(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return "", errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return string(data), nil
}
