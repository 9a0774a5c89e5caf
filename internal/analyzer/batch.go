package analyzer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	dsverr "github.com/akrisanov/docstring-verifier/internal/errors"
)

// AnalyzeBatch analyzes files concurrently. Results come back in input
// order; a file that fails to parse gets a report with Err set instead of
// failing the whole batch. Concurrency <= 0 means one worker per CPU.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, paths []string, concurrency int) []FileReport {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	reports := make([]FileReport, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			report, err := a.AnalyzeFile(gctx, path)
			if err != nil {
				reports[i] = FileReport{Path: path, Err: asVerifierError(path, err)}
				return nil
			}
			reports[i] = *report
			return nil
		})
	}

	// Workers never return errors; they record failures per file.
	_ = g.Wait()

	return reports
}

func asVerifierError(path string, err error) *dsverr.VerifierError {
	if verr, ok := err.(*dsverr.VerifierError); ok {
		return verr
	}
	return dsverr.New(dsverr.InternalError, err.Error(), err).WithFile(path)
}
