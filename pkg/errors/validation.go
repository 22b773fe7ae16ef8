package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// debianPackageNameRegex matches Debian package names (Debian Policy 5.6.1),
// optionally qualified with an architecture as printed by multi-arch systems
// (e.g. "libc6:i386").
var debianPackageNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9+.-]+(:[a-z0-9-]+)?$`)

// ValidatePackageName validates a package identifier before it is handed to
// the package manager as a command argument.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No leading dash (would be read as an option)
//   - Must follow Debian package naming
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, "-") {
		return New(ErrCodeInvalidPackage, "package name cannot start with '-': %q", name)
	}

	if !debianPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid Debian package name: %q", name)
	}

	return nil
}

// ValidateGraphName validates a graph name received from outside the process
// (for instance a URL path segment) before it is used to build a file name.
// It rejects anything that is not a plain identifier.
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "graph name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "graph name too long (max 64 characters)")
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidInput, "graph name contains invalid characters: %q", name)
		}
	}

	return nil
}
