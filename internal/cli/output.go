package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arc-language/libyear/pkg/report"
)

// render writes v as JSON or YAML, or calls table for the table format
func render(w io.Writer, v any, table func() error) error {
	switch config.Output {
	case report.FormatTable, "":
		return table()
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case report.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want one of %v)", config.Output, report.Formats())
	}
}

func formatTime(ts *time.Time) string {
	if ts == nil {
		return "unknown"
	}
	return ts.UTC().Format(time.RFC3339)
}
