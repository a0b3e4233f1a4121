package merging

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/speakeasy-api/textmerge/internal/fs"
	"github.com/speakeasy-api/textmerge/internal/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Engine struct {
	source      Source
	merger      *TextMerger
	fsys        *fs.FileSystem
	concurrency int
	dryRun      bool
}

type EngineOption func(*Engine)

// WithConcurrency limits the number of files merged at once. Zero or less means unlimited.
func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithDryRun merges without writing outputs.
func WithDryRun(dryRun bool) EngineOption {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// NewEngine reads versions from source and writes merged files through fsys.
func NewEngine(source Source, merger *TextMerger, fsys *fs.FileSystem, opts ...EngineOption) *Engine {
	e := &Engine{
		source: source,
		merger: merger,
		fsys:   fsys,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessBatch merges every file set. Results keep the order of sets. Conflicts
// are reported through the results; the returned error aggregates files that
// could not be read, merged or written.
func (e *Engine) ProcessBatch(ctx context.Context, sets []FileSet) ([]MergeResult, error) {
	results := make([]MergeResult, len(sets))

	g, ctx := errgroup.WithContext(ctx)
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}

	for i, set := range sets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = MergeResult{Path: set.Path, Status: MergeStatusSkipped, Error: err}
				return nil
			}
			results[i] = e.ProcessSingle(ctx, set)
			return nil
		})
	}
	_ = g.Wait()

	var errs *multierror.Error
	for _, r := range results {
		if r.Error != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", r.Path, r.Error))
		}
	}

	return results, errs.ErrorOrNil()
}

// ProcessSingle merges one file set and writes the result.
func (e *Engine) ProcessSingle(ctx context.Context, set FileSet) MergeResult {
	if set.Path == "" {
		set.Path = set.OutputPath()
	}
	res := MergeResult{Path: set.Path, Output: set.OutputPath()}
	logger := log.From(ctx).WithAssociatedFile(res.Output).With(zap.String("path", set.Path))

	versions, err := readVersions(e.source, set)
	if err != nil {
		res.Error = err
		return res
	}

	merged, err := e.merger.Merge(versions)
	if err != nil {
		res.Error = fmt.Errorf("merge failed: %w", err)
		return res
	}

	res.Status = merged.Status
	res.Content = merged.Content
	res.Conflicts = merged.Conflicts
	res.Regions = merged.Regions

	switch res.Status {
	case MergeStatusBinary:
		logger.Warn("binary file left unmerged")
	case MergeStatusConflict:
		for _, cErr := range res.ConflictErrors() {
			logger.Warn("", zap.Error(cErr))
		}
	}

	if e.dryRun || res.Output == "" {
		return res
	}

	if err := e.write(res); err != nil {
		res.Error = err
	}

	return res
}

func (e *Engine) write(res MergeResult) error {
	switch res.Status {
	case MergeStatusSkipped, MergeStatusBinary:
		return nil
	case MergeStatusDeleted:
		if err := e.fsys.Remove(res.Output); err != nil {
			return fmt.Errorf("failed to remove merged file: %w", err)
		}
		return nil
	}

	mode, err := e.fsys.Mode(res.Output)
	if err != nil {
		return fmt.Errorf("failed to stat merged file: %w", err)
	}

	if err := e.fsys.WriteFile(res.Output, res.Content, mode); err != nil {
		return fmt.Errorf("failed to write merged file: %w", err)
	}

	return nil
}
