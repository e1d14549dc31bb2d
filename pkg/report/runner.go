// Package report evaluates many requirements concurrently and renders the
// results as a table, JSON or YAML.
package report

import (
	"context"
	"io"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/arc-language/libyear/pkg/core"
	"github.com/arc-language/libyear/pkg/manifest"
	"github.com/arc-language/libyear/pkg/staleness"
)

// DefaultConcurrency is used when a Runner is given a non-positive limit
const DefaultConcurrency = core.DefaultConcurrency

// Source computes the staleness of one package
type Source interface {
	LibDays(ctx context.Context, name, version, versionLessThan string) (*staleness.Result, error)
}

// Row is the outcome for one requirement. Exactly one of Result and Err is set.
type Row struct {
	Requirement manifest.Requirement
	Result      *staleness.Result
	Err         error
}

// Counted reports whether the row contributes to the totals
func (r Row) Counted() bool {
	return r.Err == nil && r.Result != nil && r.Result.Status == core.StatusKnown
}

// Runner evaluates requirements with bounded concurrency
type Runner struct {
	source      Source
	concurrency int
	logger      *log.Logger
}

// NewRunner creates a Runner. A nil logger discards debug output.
func NewRunner(source Source, concurrency int, logger *log.Logger) *Runner {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Runner{source: source, concurrency: concurrency, logger: logger}
}

// Run evaluates every requirement and returns one row per requirement in
// input order. A failing package is recorded in its row and does not stop
// the others; only cancellation of ctx aborts the run.
func (r *Runner) Run(ctx context.Context, reqs []manifest.Requirement) (*Report, error) {
	rows := make([]Row, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.logger.Printf("Evaluating %s", req)
			res, err := r.source.LibDays(gctx, req.Name, req.Version, req.VersionLessThan)
			rows[i] = Row{Requirement: req, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Report{Rows: rows}, nil
}
