// pkg/core/errors.go
package core

import "errors"

var (
	// ErrPackageNotFound indicates the registry has no versions for a package
	ErrPackageNotFound = errors.New("package not found")

	// ErrVersionNotFound indicates a version is not among the published versions
	ErrVersionNotFound = errors.New("version not found")

	// ErrBackendUnavailable indicates the registry could not be reached or
	// answered with something that is not a search result
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidVersion indicates a version or bound could not be parsed
	ErrInvalidVersion = errors.New("invalid version")

	// ErrUnsupportedBackend indicates an unknown backend name
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrNotConfigured indicates a backend is missing required settings
	ErrNotConfigured = errors.New("backend not configured")
)
