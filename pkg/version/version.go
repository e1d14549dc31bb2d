// pkg/version/version.go
package version

import (
	"errors"
	"fmt"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
	"golang.org/x/mod/semver"
)

// ErrInvalid is returned when a version string cannot be parsed
var ErrInvalid = errors.New("invalid version")

// Version is a parsed package version.
// The zero value is not a valid version.
type Version struct {
	raw  string
	base pep440.Version // epoch and release only
	pep  pep440.Version // set unless the version is semver-only
	sem  string         // canonical semver, set for semver-only versions
	ok   bool
}

// Parse parses a registry version string.
//
// PEP 440 versions (1.0, 1.0rc1, 1.0.post2, 1.0.dev3, 1!2.0, 1.0+local) are
// ordered as PEP 440 orders them. Strings that are only valid semver, such as
// 1.0.0-snapshot, fall back to semver precedence. Two strings that differ
// only in formatting, such as "1.0" and "1.0.0", parse to equal versions.
func Parse(raw string) (Version, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimLeft(s, "= ")
	s = strings.TrimPrefix(s, "v")
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty string", ErrInvalid)
	}
	raw = strings.TrimSpace(raw)

	if p, err := pep440.Parse(s); err == nil {
		base, err := pep440.Parse(p.BaseVersion())
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalid, raw, err)
		}
		return Version{raw: raw, base: base, pep: p, ok: true}, nil
	}

	if c := semver.Canonical("v" + s); c != "" {
		core := strings.TrimPrefix(c, "v")
		if i := strings.IndexAny(core, "-+"); i >= 0 {
			core = core[:i]
		}
		base, err := pep440.Parse(core)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalid, raw, err)
		}
		return Version{raw: raw, base: base, sem: c, ok: true}, nil
	}

	return Version{}, fmt.Errorf("%w: %q", ErrInvalid, raw)
}

// MustParse is like Parse but panics on error
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as published by the registry
func (v Version) String() string {
	return v.raw
}

// Original returns the unmodified version string
func (v Version) Original() string {
	return v.raw
}

// Canonical returns the normalized form, e.g. "2.0rc1" for "v2.0-RC01"
func (v Version) Canonical() string {
	if v.semverOnly() {
		return strings.TrimPrefix(v.sem, "v")
	}
	if !v.ok {
		return ""
	}
	return v.pep.String()
}

// IsZero reports whether v is the zero Version
func (v Version) IsZero() bool {
	return !v.ok
}

// IsPrerelease reports whether v is a pre-release or development release
func (v Version) IsPrerelease() bool {
	if v.semverOnly() {
		return semver.Prerelease(v.sem) != ""
	}
	return v.ok && v.pep.IsPreRelease()
}

func (v Version) semverOnly() bool {
	return v.ok && v.sem != ""
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to
// or after o.
//
// Versions are grouped by release first. Within a release, semver-only
// versions sort before every PEP 440 version and compare by semver precedence.
func (v Version) Compare(o Version) int {
	if c := v.base.Compare(o.base); c != 0 {
		return c
	}
	switch {
	case v.semverOnly() && o.semverOnly():
		return semver.Compare(v.sem, o.sem)
	case v.semverOnly():
		return -1
	case o.semverOnly():
		return 1
	}
	return v.pep.Compare(o.pep)
}

// Equal reports whether v and o have the same precedence
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// Less reports whether v sorts before o
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}
