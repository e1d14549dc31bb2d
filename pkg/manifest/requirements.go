package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseRequirements reads a pip requirements file. Comments, options such as
// -r and -e, and unpinned requirements are skipped. Lines ending in a
// backslash continue on the next line.
func ParseRequirements(r io.Reader, source string) ([]Requirement, error) {
	var (
		reqs    []Requirement
		pending strings.Builder
		start   int
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, " #"); i >= 0 {
			line = line[:i]
		}
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			line = ""
		}

		if pending.Len() == 0 {
			start = lineNo
		}
		if cont, ok := strings.CutSuffix(strings.TrimRight(line, " \t"), `\`); ok {
			pending.WriteString(cont)
			continue
		}
		pending.WriteString(line)

		if req, ok := ParseSpecifier(pending.String()); ok {
			req.Source = source
			req.Line = start
			reqs = append(reqs, req)
		}
		pending.Reset()
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", source, err)
	}

	return reqs, nil
}
