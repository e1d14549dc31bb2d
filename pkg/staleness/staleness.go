// Package staleness turns resolved versions into libyear-style day counts.
package staleness

import (
	"context"
	"fmt"
	"time"

	"github.com/arc-language/libyear/pkg/core"
	"github.com/arc-language/libyear/pkg/resolver"
	"github.com/arc-language/libyear/pkg/version"
)

const day = 24 * time.Hour

// Result is the staleness of one package
type Result struct {
	Name    string      `json:"name" yaml:"name"`
	Version string      `json:"version,omitempty" yaml:"version,omitempty"`
	Latest  string      `json:"latest,omitempty" yaml:"latest,omitempty"`
	Days    int         `json:"days" yaml:"days"`
	Status  core.Status `json:"status" yaml:"status"`
}

// Years returns Days in years of 365.25 days
func (r *Result) Years() float64 {
	return float64(r.Days) / 365.25
}

// Calculator computes staleness using a resolver and its registry
type Calculator struct {
	resolver *resolver.Resolver
	registry resolver.Registry
}

// NewCalculator creates a Calculator
func NewCalculator(registry resolver.Registry, r *resolver.Resolver) *Calculator {
	if r == nil {
		r = resolver.New(registry, nil)
	}
	return &Calculator{resolver: r, registry: registry}
}

// DaysBetween returns the whole days from from to to, truncated toward zero
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / day)
}

// LibDays resolves name and returns the days between the resolved version's
// publish time and the latest version's.
//
// When either timestamp is missing, Days is 0 and Status is unknown. An
// unsatisfiable bound, an unknown package or a missing pin also report 0
// days, with the matching status.
func (c *Calculator) LibDays(ctx context.Context, name, ver, versionLessThan string) (*Result, error) {
	res, err := c.resolver.Resolve(ctx, name, ver, versionLessThan)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Name:    name,
		Version: res.Version,
		Latest:  res.Latest,
		Status:  res.Status,
	}
	if res.VersionPublished != nil && res.LatestPublished != nil {
		result.Days = DaysBetween(*res.VersionPublished, *res.LatestPublished)
	}

	return result, nil
}

// CountReleasesAfter returns how many distinct versions of name are newer than ver
func (c *Calculator) CountReleasesAfter(ctx context.Context, name, ver string) (int, error) {
	target, err := version.Parse(ver)
	if err != nil {
		return 0, fmt.Errorf("%w: %s==%s: %v", core.ErrInvalidVersion, name, ver, err)
	}

	set, err := c.registry.ListVersions(ctx, name, "")
	if err != nil {
		return 0, fmt.Errorf("listing versions of %s: %w", name, err)
	}

	distinct := set.Distinct()
	idx := set.IndexOf(target)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s==%s", core.ErrVersionNotFound, name, ver)
	}

	return len(distinct) - idx - 1, nil
}
