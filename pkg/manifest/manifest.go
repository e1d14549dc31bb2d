// Package manifest reads pinned Python dependencies from requirements files
// and pyproject.toml.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Requirement is one dependency with either an exact pin or an upper bound
type Requirement struct {
	Name            string // Normalized distribution name
	Version         string // From ==, empty when bounded
	VersionLessThan string // From <, empty when pinned
	Source          string // File the requirement came from
	Line            int    // 1-based line, 0 when unknown
}

// String renders the requirement as a specifier
func (r Requirement) String() string {
	if r.Version != "" {
		return r.Name + "==" + r.Version
	}
	return r.Name + "<" + r.VersionLessThan
}

var (
	specifier = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[[^\]]*\])?\s*(.*)$`)
	separator = regexp.MustCompile(`[-_.]+`)
)

// NormalizeName returns the PEP 503 form of a distribution name:
// lower case, with runs of "-", "_" and "." collapsed to a single "-".
func NormalizeName(name string) string {
	return separator.ReplaceAllString(strings.ToLower(name), "-")
}

// ParseSpecifier parses a PEP 508 requirement such as
// "requests[socks]>=2.0,<3; python_version>'3.8'".
//
// It returns false for requirements that are neither pinned with == nor
// bounded with <, and for URL or editable requirements.
func ParseSpecifier(line string) (Requirement, bool) {
	if i := strings.Index(line, ";"); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "-") || strings.Contains(line, "://") || strings.Contains(line, " @ ") {
		return Requirement{}, false
	}

	m := specifier.FindStringSubmatch(line)
	if m == nil {
		return Requirement{}, false
	}

	req := Requirement{Name: NormalizeName(m[1])}
	for _, clause := range strings.Split(m[2], ",") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.HasPrefix(clause, "==="):
			req.Version = strings.TrimSpace(clause[3:])
		case strings.HasPrefix(clause, "=="):
			pin := strings.TrimSpace(clause[2:])
			if !strings.Contains(pin, "*") {
				req.Version = pin
			}
		case strings.HasPrefix(clause, "<") && !strings.HasPrefix(clause, "<="):
			req.VersionLessThan = strings.TrimSpace(clause[1:])
		}
	}

	// a pin wins over a bound
	if req.Version != "" {
		req.VersionLessThan = ""
	}
	if req.Version == "" && req.VersionLessThan == "" {
		return Requirement{}, false
	}
	return req, true
}

// LoadFile reads requirements from path. Files named pyproject.toml are read
// as TOML, anything else as a pip requirements file.
func LoadFile(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	defer f.Close()

	if filepath.Base(path) == "pyproject.toml" {
		return ParsePyProject(f, path)
	}
	return ParseRequirements(f, path)
}
