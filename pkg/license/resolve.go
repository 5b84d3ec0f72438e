package license

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/noticecheck/pkg/deps"
	"github.com/matzehuels/noticecheck/pkg/errors"
)

// Resolved is a dependency with its license decided. Exactly one of
// Identifier and Text is set.
type Resolved struct {
	Record     deps.Record
	Identifier string // Short license identifier; counted as in use
	Text       string // Full license text printed inline
}

// Addition is a manual notice entry: its License joins the in-use set and
// its Text is printed verbatim after the dependencies.
type Addition struct {
	License string
	Text    string
}

// Resolution is everything the renderer needs besides the bundled texts.
type Resolution struct {
	Dependencies []Resolved
	Additions    []Addition
	InUse        *Set
}

// MissingLicenseFileError reports a dependency that only ships a license
// file whose text could not be found or is empty.
type MissingLicenseFileError struct {
	Name string
}

func (e *MissingLicenseFileError) Error() string {
	return fmt.Sprintf("license file not found for %s", e.Name)
}

// Code implements [errors.Coder].
func (e *MissingLicenseFileError) Code() errors.Code { return errors.ErrCodeMissingLicenseFile }

// Resolver decides the license of each dependency.
type Resolver struct {
	Overrides    *Table            // Curated overrides, consulted first
	LicenseFiles map[string]string // "name@version" to license file text
}

// Resolve walks records in order:
//
//  1. An override for the name wins over anything the record says.
//  2. Otherwise the record's license identifier is used.
//  3. Otherwise, if the record ships a license file, its text from
//     LicenseFiles is used; a missing or empty entry is a
//     [MissingLicenseFileError].
//  4. Otherwise the dependency is unlicensed ([deps.UnlicensedError]).
//
// Identifiers from steps 1 and 2 and from the additions form the in-use set.
func (r *Resolver) Resolve(records []deps.Record, additions []Addition) (*Resolution, error) {
	res := &Resolution{
		Dependencies: make([]Resolved, 0, len(records)),
		Additions:    additions,
		InUse:        NewSet(),
	}

	for _, rec := range records {
		resolved, err := r.resolve(rec)
		if err != nil {
			return nil, err
		}
		if resolved.Identifier != "" {
			res.InUse.Add(resolved.Identifier)
		}
		res.Dependencies = append(res.Dependencies, resolved)
	}
	for _, a := range additions {
		res.InUse.Add(a.License)
	}
	return res, nil
}

func (r *Resolver) resolve(rec deps.Record) (Resolved, error) {
	if o, ok := r.Overrides.Lookup(rec.Name); ok {
		return Resolved{Record: rec, Identifier: o.License, Text: o.Text}, nil
	}
	if rec.License != "" {
		return Resolved{Record: rec, Identifier: rec.License}, nil
	}
	if rec.HasLicenseFile {
		text := r.LicenseFiles[rec.String()]
		if strings.TrimSpace(text) == "" {
			return Resolved{}, &MissingLicenseFileError{Name: rec.Name}
		}
		return Resolved{Record: rec, Text: text}, nil
	}
	return Resolved{}, &deps.UnlicensedError{Name: rec.Name}
}

// ReadLicenseFiles reads the local license file of every record that ships
// one and has no override, keyed by "name@version". Files that do not exist
// are left out so that resolution names the dependency; other read failures
// are returned.
func ReadLicenseFiles(records []deps.Record, overrides *Table) (map[string]string, error) {
	files := make(map[string]string)
	for _, rec := range records {
		if !rec.HasLicenseFile || rec.LicenseFile == "" {
			continue
		}
		if _, ok := overrides.Lookup(rec.Name); ok {
			continue
		}
		data, err := os.ReadFile(rec.LicenseFile)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "read license file of %s", rec.Name)
		}
		files[rec.String()] = string(data)
	}
	return files, nil
}
