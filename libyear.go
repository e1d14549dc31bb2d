// libyear.go
package libyear

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/arc-language/libyear/pkg/backend"
	"github.com/arc-language/libyear/pkg/core"
	"github.com/arc-language/libyear/pkg/resolver"
	"github.com/arc-language/libyear/pkg/staleness"
)

// Re-export types for convenience
type (
	BackendType            = backend.BackendType
	Backend                = backend.Backend
	Config                 = backend.Config
	NexusConfig            = backend.NexusConfig
	ArtifactRegistryConfig = backend.ArtifactRegistryConfig
	VersionSet             = core.VersionSet
	PackageVersion         = core.PackageVersion
	Status                 = core.Status
	Resolution             = resolver.Resolution
	Result                 = staleness.Result
)

// Re-export constants
const (
	BackendNexus            = backend.BackendNexus
	BackendArtifactRegistry = backend.BackendArtifactRegistry
	BackendAuto             = backend.BackendAuto

	StatusKnown         = core.StatusKnown
	StatusUnknown       = core.StatusUnknown
	StatusUnsatisfiable = core.StatusUnsatisfiable
	StatusNotFound      = core.StatusNotFound
	StatusUnpinned      = core.StatusUnpinned
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return backend.DefaultConfig()
}

// DaysBetween returns whole days from from to to, truncated toward zero
func DaysBetween(from, to time.Time) int {
	return staleness.DaysBetween(from, to)
}

// Calculator computes dependency staleness against one registry
type Calculator struct {
	backend   backend.Backend
	config    *backend.Config
	resolver  *resolver.Resolver
	staleness *staleness.Calculator
}

// Option customises a Calculator
type Option func(*options)

type options struct {
	diagnostics io.Writer
}

// WithDiagnostics sends unsatisfiable-constraint lines to w instead of stderr
func WithDiagnostics(w io.Writer) Option {
	return func(o *options) {
		o.diagnostics = w
	}
}

// NewCalculator creates a calculator with the specified backend
func NewCalculator(ctx context.Context, backendType BackendType, config *Config, opts ...Option) (*Calculator, error) {
	if config == nil {
		config = backend.DefaultConfig()
	}

	if backendType == backend.BackendAuto || backendType == "" {
		detected, ok := backend.Detect(config)
		if !ok {
			return nil, fmt.Errorf("%w: set a nexus url or an artifact registry project", ErrNotConfigured)
		}
		backendType = detected
	}

	var b backend.Backend
	var err error

	switch backendType {
	case backend.BackendNexus:
		b, err = backend.NewNexusBackend(config)
	case backend.BackendArtifactRegistry:
		b, err = backend.NewArtifactRegistryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backendType)
	}

	if err != nil {
		return nil, fmt.Errorf("initializing backend: %w", err)
	}

	return NewCalculatorWithBackend(b, config, opts...), nil
}

// NewCalculatorWithBackend creates a calculator over an existing backend
func NewCalculatorWithBackend(b Backend, config *Config, opts ...Option) *Calculator {
	if config == nil {
		config = backend.DefaultConfig()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := resolver.New(b, &resolver.Config{
		Diagnostics: o.diagnostics,
		Debug:       config.Debug,
		Logger:      config.Logger,
	})

	return &Calculator{
		backend:   b,
		config:    config,
		resolver:  r,
		staleness: staleness.NewCalculator(b, r),
	}
}

// LibDays returns the days between the publish times of the resolved version
// and the latest version of name. Pass either version or versionLessThan.
func (c *Calculator) LibDays(ctx context.Context, name, version, versionLessThan string) (*Result, error) {
	if name == "" {
		return nil, &Error{Op: "libdays", Err: fmt.Errorf("package name is required")}
	}

	res, err := c.staleness.LibDays(ctx, name, version, versionLessThan)
	if err != nil {
		return nil, &Error{Op: "libdays", Package: name, Err: err}
	}
	return res, nil
}

// Resolve selects the current and latest versions of name and their publish times
func (c *Calculator) Resolve(ctx context.Context, name, version, versionLessThan string) (*Resolution, error) {
	if name == "" {
		return nil, &Error{Op: "resolve", Err: fmt.Errorf("package name is required")}
	}

	res, err := c.resolver.Resolve(ctx, name, version, versionLessThan)
	if err != nil {
		return nil, &Error{Op: "resolve", Package: name, Err: err}
	}
	return res, nil
}

// CountReleasesAfter returns how many distinct releases of name are newer than version
func (c *Calculator) CountReleasesAfter(ctx context.Context, name, version string) (int, error) {
	if name == "" {
		return 0, &Error{Op: "releases", Err: fmt.Errorf("package name is required")}
	}

	n, err := c.staleness.CountReleasesAfter(ctx, name, version)
	if err != nil {
		return 0, &Error{Op: "releases", Package: name, Err: err}
	}
	return n, nil
}

// ListVersions returns the ascending versions of name, or only exact when it is set
func (c *Calculator) ListVersions(ctx context.Context, name, exact string) (*VersionSet, error) {
	if name == "" {
		return nil, &Error{Op: "versions", Err: fmt.Errorf("package name is required")}
	}

	set, err := c.backend.ListVersions(ctx, name, exact)
	if err != nil {
		return nil, &Error{Op: "versions", Package: name, Err: err}
	}
	if set.Len() == 0 {
		return set, &Error{Op: "versions", Package: name, Err: ErrPackageNotFound}
	}
	return set, nil
}

// Backend returns the name of the active backend
func (c *Calculator) Backend() string {
	return c.backend.Name()
}

// Close cleans up any resources used by the calculator
func (c *Calculator) Close() error {
	return c.backend.Close()
}
