package errors

import (
	"strings"
	"unicode"
)

// ValidatePackageName validates a dependency name taken from configuration.
// It rejects names that could never match a resolved dependency:
//   - No empty names
//   - No control characters
//   - No surrounding whitespace
//   - Maximum length of 256 characters
//
// Ecosystem-specific rules (scoped npm names, crate names) are not enforced;
// overrides must be able to name anything the adapters emit.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidPackage, "package name has surrounding whitespace: %q", name)
	}

	return nil
}

// ValidateNoticeName validates the base name of the notice document.
// The name is joined with the manifest directory, so it must be a simple
// basename without an extension-like ".txt" suffix or path components.
func ValidateNoticeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "notice name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "notice name cannot contain path separators")
	}

	if name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "notice name cannot be a hidden file")
	}

	if strings.HasSuffix(strings.ToLower(name), ".txt") {
		return New(ErrCodeInvalidInput, "notice name %q must not include the .txt extension", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "notice name contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a license text URL.
// It ensures the URL has a scheme the fetcher understands.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, scheme := range []string{"http://", "https://", "file://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}

	return New(ErrCodeInvalidInput, "URL must use http, https, or file scheme: %q", rawURL)
}
