// Package resolver decides which published version of a package is "current"
// and which is "latest".
package resolver

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/arc-language/libyear/pkg/core"
	"github.com/arc-language/libyear/pkg/version"
)

// Registry is the registry capability the resolver needs
type Registry interface {
	ListVersions(ctx context.Context, name, exact string) (*core.VersionSet, error)
	PublishTimestamp(ctx context.Context, name, version string) (*time.Time, error)
}

// Config configures a Resolver
type Config struct {
	Diagnostics io.Writer   // Receives unsatisfiable-constraint lines (default: stderr)
	Debug       bool        // Enable debug logging
	Logger      *log.Logger // Custom logger (optional)
}

// Resolver resolves version constraints against a registry
type Resolver struct {
	registry    Registry
	diagnostics io.Writer
	logger      *log.Logger
}

// Resolution is the outcome of resolving one package.
// Every field but Name and Status is empty unless Status is known or unknown.
type Resolution struct {
	Name             string
	Version          string
	VersionPublished *time.Time
	Latest           string
	LatestPublished  *time.Time
	Status           core.Status
}

// Resolved reports whether a version was selected
func (r *Resolution) Resolved() bool {
	return r.Status == core.StatusKnown || r.Status == core.StatusUnknown
}

// New creates a Resolver
func New(registry Registry, cfg *Config) *Resolver {
	if cfg == nil {
		cfg = &Config{}
	}

	diagnostics := cfg.Diagnostics
	if diagnostics == nil {
		diagnostics = os.Stderr
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Resolver{
		registry:    registry,
		diagnostics: diagnostics,
		logger:      logger,
	}
}

// ResolveVersions selects the current and latest versions of name without
// fetching timestamps.
//
// With versionLessThan set, the current version is the greatest published
// version strictly below it; if there is none a diagnostic is written and
// the status is unsatisfiable. Otherwise ver is used as given, without
// checking that it exists. With neither set nothing is resolved and the
// status is unpinned.
func (r *Resolver) ResolveVersions(ctx context.Context, name, ver, versionLessThan string) (*Resolution, error) {
	if ver == "" && versionLessThan == "" {
		r.logger.Printf("No version or bound given for %s", name)
		return &Resolution{Name: name, Status: core.StatusUnpinned}, nil
	}

	set, err := r.registry.ListVersions(ctx, name, "")
	if err != nil {
		return nil, fmt.Errorf("listing versions of %s: %w", name, err)
	}

	latest, ok := set.Latest()
	if !ok {
		r.logger.Printf("No versions of %s found", name)
		return &Resolution{Name: name, Status: core.StatusNotFound}, nil
	}

	resolved := ver
	if versionLessThan != "" {
		bound, err := version.Parse(versionLessThan)
		if err != nil {
			return nil, fmt.Errorf("%w: %s<%s: %v", core.ErrInvalidVersion, name, versionLessThan, err)
		}
		below, ok := set.Before(bound)
		if !ok {
			fmt.Fprintf(r.diagnostics, "Unsatisfiable constraint: %s<%s\n", name, bound.Canonical())
			return &Resolution{Name: name, Status: core.StatusUnsatisfiable}, nil
		}
		resolved = below.Version.String()
	}

	r.logger.Printf("Resolved %s: current=%s latest=%s", name, resolved, latest.Version)

	return &Resolution{
		Name:    name,
		Version: resolved,
		Latest:  latest.Version.String(),
		Status:  core.StatusKnown,
	}, nil
}

// Resolve is ResolveVersions followed by a publish timestamp lookup for both
// versions. A missing timestamp leaves the field nil and sets the status to
// unknown.
func (r *Resolver) Resolve(ctx context.Context, name, ver, versionLessThan string) (*Resolution, error) {
	res, err := r.ResolveVersions(ctx, name, ver, versionLessThan)
	if err != nil || !res.Resolved() {
		return res, err
	}

	res.VersionPublished, err = r.registry.PublishTimestamp(ctx, name, res.Version)
	if err != nil {
		return nil, fmt.Errorf("publish time of %s==%s: %w", name, res.Version, err)
	}

	res.LatestPublished, err = r.registry.PublishTimestamp(ctx, name, res.Latest)
	if err != nil {
		return nil, fmt.Errorf("publish time of %s==%s: %w", name, res.Latest, err)
	}

	if res.VersionPublished == nil || res.LatestPublished == nil {
		res.Status = core.StatusUnknown
	}

	return res, nil
}
