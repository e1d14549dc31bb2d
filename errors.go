// errors.go
package libyear

import (
	"fmt"

	"github.com/arc-language/libyear/pkg/core"
)

var (
	// ErrPackageNotFound indicates the registry has no versions for the package
	ErrPackageNotFound = core.ErrPackageNotFound

	// ErrVersionNotFound indicates the version is not published
	ErrVersionNotFound = core.ErrVersionNotFound

	// ErrBackendUnavailable indicates the registry could not be reached.
	// Callers may retry; it never means the package or version is absent.
	ErrBackendUnavailable = core.ErrBackendUnavailable

	// ErrInvalidVersion indicates a version or bound could not be parsed
	ErrInvalidVersion = core.ErrInvalidVersion

	// ErrUnsupportedBackend indicates an unknown backend type
	ErrUnsupportedBackend = core.ErrUnsupportedBackend

	// ErrNotConfigured indicates the backend is missing required settings
	ErrNotConfigured = core.ErrNotConfigured
)

// Error is returned by every Calculator method. Op names the calculator
// operation ("libdays", "resolve", "releases" or "versions") and Package the
// distribution it was asked about, empty when the name itself was missing.
// Err keeps the cause, so errors.Is matches the sentinels above.
type Error struct {
	Op      string
	Package string
	Err     error
}

func (e *Error) Error() string {
	if e.Package == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}
