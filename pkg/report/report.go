package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/arc-language/libyear/pkg/core"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the supported output formats
func Formats() []string {
	return []string{FormatTable, FormatJSON, FormatYAML}
}

// Report holds the rows of one run
type Report struct {
	Rows []Row
}

// Summary aggregates the rows with a known staleness
type Summary struct {
	TotalDays  int     `json:"total_days" yaml:"total_days"`
	TotalYears float64 `json:"total_years" yaml:"total_years"`
	Average    float64 `json:"average_years" yaml:"average_years"`
	Counted    int     `json:"counted" yaml:"counted"`
	Total      int     `json:"total" yaml:"total"`
}

// Summary computes the totals
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Rows)}
	for _, row := range r.Rows {
		if !row.Counted() {
			continue
		}
		s.Counted++
		s.TotalDays += row.Result.Days
		s.TotalYears += row.Result.Years()
	}
	if s.Counted > 0 {
		s.Average = s.TotalYears / float64(s.Counted)
	}
	return s
}

type entry struct {
	Name    string  `json:"name" yaml:"name"`
	Source  string  `json:"source,omitempty" yaml:"source,omitempty"`
	Version string  `json:"version,omitempty" yaml:"version,omitempty"`
	Latest  string  `json:"latest,omitempty" yaml:"latest,omitempty"`
	Days    int     `json:"days" yaml:"days"`
	Years   float64 `json:"years" yaml:"years"`
	Status  string  `json:"status" yaml:"status"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"`
}

type document struct {
	Packages []entry `json:"packages" yaml:"packages"`
	Summary  Summary `json:"summary" yaml:"summary"`
}

func (r *Report) document() document {
	doc := document{Packages: make([]entry, 0, len(r.Rows)), Summary: r.Summary()}
	for _, row := range r.Rows {
		e := entry{Name: row.Requirement.Name, Source: row.Requirement.Source, Status: "error"}
		if row.Err != nil {
			e.Error = row.Err.Error()
		}
		if res := row.Result; res != nil {
			e.Version = res.Version
			e.Latest = res.Latest
			e.Days = res.Days
			e.Years = res.Years()
			e.Status = string(res.Status)
		}
		doc.Packages = append(doc.Packages, e)
	}
	return doc
}

// Render writes the report to w in format. In table format, rows without a
// known staleness are listed on skipped as [SKIP] lines.
func (r *Report) Render(w, skipped io.Writer, format string) error {
	switch format {
	case FormatTable, "":
		return r.renderTable(w, skipped)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.document())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.document()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func (r *Report) renderTable(w, skipped io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-25s %-12s %-12s %8s %8s\n", "Package", "Current", "Latest", "Days", "Lag(yr)"); err != nil {
		return err
	}

	for _, row := range r.Rows {
		if !row.Counted() {
			fmt.Fprintf(skipped, "[SKIP] %-20s %s\n", row.Requirement.Name, skipReason(row))
			continue
		}
		res := row.Result
		fmt.Fprintf(w, "%-25s %-12s %-12s %8d %8.2f\n", res.Name, res.Version, res.Latest, res.Days, res.Years())
	}

	s := r.Summary()
	_, err := fmt.Fprintf(w, "\nTOTAL Lag: %.2f  |  avg %.2f  |  %d/%d packages evaluated\n",
		s.TotalYears, s.Average, s.Counted, s.Total)
	return err
}

func skipReason(row Row) string {
	if row.Err != nil {
		return row.Err.Error()
	}
	if row.Result == nil {
		return "no result"
	}
	switch row.Result.Status {
	case core.StatusUnsatisfiable:
		return "no version below " + strconv.Quote(row.Requirement.VersionLessThan)
	case core.StatusNotFound:
		return "no versions published"
	case core.StatusUnpinned:
		return "no version pinned"
	default:
		return "publish time unknown"
	}
}
