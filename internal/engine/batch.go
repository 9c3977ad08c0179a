package engine

import (
	"context"
	"time"

	"github.com/jonathan/jobfit/internal/types"
	"golang.org/x/sync/errgroup"
)

// AnalyzeBullets validates statements concurrently. Results keep input order.
// The only error is cancellation of ctx.
func (e *Engine) AnalyzeBullets(ctx context.Context, statements []types.SixPartStatement) (results []types.ValidationResult, err error) {
	defer e.observe("analyze_bullets", time.Now(), &err)

	results = make([]types.ValidationResult, len(statements))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i := range statements {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			// each goroutine owns results[i]
			results[i] = e.analyzer.Analyze(statements[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
