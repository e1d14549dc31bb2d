package manifest

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
)

// pyProject is the subset of pyproject.toml listing dependencies
type pyProject struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// ParsePyProject reads [project].dependencies and every
// [project.optional-dependencies] group. Optional groups follow the main
// list in name order.
func ParsePyProject(r io.Reader, source string) ([]Requirement, error) {
	var doc pyProject
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("manifest: failed to parse '%s': %w", source, err)
	}

	specs := append([]string(nil), doc.Project.Dependencies...)

	groups := make([]string, 0, len(doc.Project.OptionalDependencies))
	for group := range doc.Project.OptionalDependencies {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	for _, group := range groups {
		specs = append(specs, doc.Project.OptionalDependencies[group]...)
	}

	var reqs []Requirement
	for _, spec := range specs {
		if req, ok := ParseSpecifier(spec); ok {
			req.Source = source
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}
