package license

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/matzehuels/noticecheck/pkg/errors"
)

// DefaultLibraryDir is the bundled license directory used when --licenses
// is not given.
const DefaultLibraryDir = "licenses"

const libraryExt = ".txt"

// MatchMode selects how library IDs are matched against in-use identifiers.
type MatchMode int

const (
	// MatchSubstring includes an entry when its ID occurs anywhere in an
	// in-use identifier, so "MIT OR Apache-2.0" pulls in both MIT and
	// Apache-2.0.
	MatchSubstring MatchMode = iota

	// MatchTokens splits in-use identifiers into license names and
	// includes an entry only on an exact token match ("BSD" does not match
	// "0BSD").
	MatchTokens
)

// ParseMatchMode parses "substring" or "tokens".
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(s) {
	case "", "substring":
		return MatchSubstring, nil
	case "tokens", "token":
		return MatchTokens, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown match mode %q (want substring or tokens)", s)
	}
}

func (m MatchMode) String() string {
	if m == MatchTokens {
		return "tokens"
	}
	return "substring"
}

// Bundled is one full-text entry of the library.
type Bundled struct {
	ID   string
	Text string
}

// Library is a directory of full license texts named <ID>.txt.
type Library struct {
	fsys fs.FS
}

// NewLibrary returns a library over fsys.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{fsys: fsys}
}

// OpenLibrary returns a library over the directory dir.
func OpenLibrary(dir string) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "license library")
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "license library")
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "license library %s is not a directory", dir)
	}
	return NewLibrary(os.DirFS(dir)), nil
}

// IDs lists the library entries in lexicographic order.
func (l *Library) IDs() ([]string, error) {
	names, err := fs.Glob(l.fsys, "*"+libraryExt)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list license library")
	}
	ids := make([]string, 0, len(names))
	for _, n := range names {
		if id := strings.TrimSuffix(path.Base(n), libraryExt); id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Filter returns the entries matching any identifier in in, sorted by ID.
// Entry text is returned verbatim.
func (l *Library) Filter(in *Set, mode MatchMode) ([]Bundled, error) {
	ids, err := l.IDs()
	if err != nil {
		return nil, err
	}

	used := in.Items()
	var out []Bundled
	for _, id := range ids {
		if !Matches(id, used, mode) {
			continue
		}
		data, err := fs.ReadFile(l.fsys, id+libraryExt)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "read bundled license %s", id)
		}
		out = append(out, Bundled{ID: id, Text: string(data)})
	}
	return out, nil
}

// Matches reports whether library entry id matches any of the identifiers.
func Matches(id string, identifiers []string, mode MatchMode) bool {
	for _, expr := range identifiers {
		switch mode {
		case MatchTokens:
			for _, tok := range Tokens(expr) {
				if tok == id {
					return true
				}
			}
		default:
			if strings.Contains(expr, id) {
				return true
			}
		}
	}
	return false
}

// Tokens splits a license expression such as "(MIT OR Apache-2.0) AND
// Unicode-DFS-2016" or "MIT/Apache-2.0" into license names. Operators are
// dropped.
func Tokens(expr string) []string {
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')' || r == '/' || r == ','
	})
	out := fields[:0]
	for _, f := range fields {
		switch strings.ToUpper(f) {
		case "OR", "AND", "WITH":
			continue
		}
		out = append(out, f)
	}
	return out
}
