// pkg/core/package.go
package core

import (
	"sort"
	"time"

	"github.com/arc-language/libyear/pkg/version"
)

// PackageVersion is one published version of a package
type PackageVersion struct {
	Name      string          // Package name as reported by the registry
	Version   version.Version // Parsed version
	Published *time.Time      // Publish or last-modified time, nil when the registry has none
}

// VersionSet holds every known version of one package, ascending by version
type VersionSet struct {
	Name     string
	Versions []PackageVersion
}

// NewVersionSet sorts versions ascending by semantic precedence.
// Equal versions keep the order they were given in.
func NewVersionSet(name string, versions []PackageVersion) *VersionSet {
	sorted := make([]PackageVersion, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Version.Less(sorted[j].Version)
	})
	return &VersionSet{Name: name, Versions: sorted}
}

// Len returns the number of entries, duplicates included
func (s *VersionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Versions)
}

// Latest returns the greatest version
func (s *VersionSet) Latest() (PackageVersion, bool) {
	if s.Len() == 0 {
		return PackageVersion{}, false
	}
	return s.Versions[len(s.Versions)-1], true
}

// Before returns the greatest version strictly less than bound
func (s *VersionSet) Before(bound version.Version) (PackageVersion, bool) {
	// leftmost insertion point of bound
	idx := sort.Search(s.Len(), func(i int) bool {
		return !s.Versions[i].Version.Less(bound)
	})
	if idx == 0 {
		return PackageVersion{}, false
	}
	return s.Versions[idx-1], true
}

// Distinct returns the ascending versions with semantic duplicates removed
func (s *VersionSet) Distinct() []version.Version {
	var out []version.Version
	for _, pv := range s.sliceOrNil() {
		if n := len(out); n > 0 && out[n-1].Equal(pv.Version) {
			continue
		}
		out = append(out, pv.Version)
	}
	return out
}

// IndexOf returns the position of v in Distinct, or -1
func (s *VersionSet) IndexOf(v version.Version) int {
	distinct := s.Distinct()
	idx := sort.Search(len(distinct), func(i int) bool {
		return !distinct[i].Less(v)
	})
	if idx < len(distinct) && distinct[idx].Equal(v) {
		return idx
	}
	return -1
}

func (s *VersionSet) sliceOrNil() []PackageVersion {
	if s == nil {
		return nil
	}
	return s.Versions
}

// Status describes how far a lookup got
type Status string

const (
	// StatusKnown means both versions and their timestamps were found
	StatusKnown Status = "known"
	// StatusUnknown means a version resolved but a publish timestamp is missing
	StatusUnknown Status = "unknown"
	// StatusUnsatisfiable means no published version is below the requested bound
	StatusUnsatisfiable Status = "unsatisfiable"
	// StatusNotFound means the registry returned no versions at all
	StatusNotFound Status = "not_found"
	// StatusUnpinned means neither a version nor an upper bound was given
	StatusUnpinned Status = "unpinned"
)
