package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"velvetstat/internal/data"

	"golang.org/x/sync/errgroup"
)

// DirResult is the outcome of running the plan against one directory.
// Exactly one of Context and Err is set.
type DirResult struct {
	Dir     string
	Context *data.RunContext
	Err     error
}

// ExtractDir runs every extractor in plan order against dir, threading one
// RunContext through them. The returned context is frozen.
func ExtractDir(ctx context.Context, dir string, plan *Plan) (*data.RunContext, error) {
	if plan == nil {
		return nil, errors.New("plan is nil")
	}
	rc := data.NewRunContext(dir)

	for _, ex := range plan.Extractors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Extractors may only read the metrics they declared in Requires().
		tracked := data.NewTrackingContext(rc)
		metrics, err := ex.Extract(ctx, filepath.Join(dir, ex.Artifact()), tracked)
		if undeclared := tracked.Undeclared(ex.Requires()); len(undeclared) > 0 {
			msg := fmt.Errorf("read undeclared metrics: %s", data.JoinKeys(undeclared))
			return nil, &ExtractorError{Extractor: ex.ID(), Err: msg}
		}
		if err != nil {
			return nil, &ExtractorError{Extractor: ex.ID(), Err: err}
		}
		if undeclared := data.Undeclared(metrics.Keys(), ex.Provides()); len(undeclared) > 0 {
			msg := fmt.Errorf("returned undeclared metrics: %s", data.JoinKeys(undeclared))
			return nil, &ExtractorError{Extractor: ex.ID(), Err: msg}
		}

		for _, m := range metrics {
			rc.Set(m.Key, m.Value)
		}
	}

	rc.Freeze()
	return rc, nil
}

// ExtractAll runs ExtractDir for every directory with at most concurrency
// directories in flight. Results are returned in input order; a failure in
// one directory never affects the others.
func ExtractAll(ctx context.Context, dirs []string, plan *Plan, concurrency int) []DirResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]DirResult, len(dirs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, dir := range dirs {
		g.Go(func() error {
			rc, err := ExtractDir(ctx, dir, plan)
			results[i] = DirResult{Dir: dir, Context: rc, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
