// Package fanout runs independent sub-operations with a fixed ceiling on the
// number in flight.
package fanout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"contacttrace/pkg/platform/sentinel"
)

// DefaultLimit is the in-flight ceiling used when a caller passes a
// non-positive limit.
const DefaultLimit = 10

// Run calls fn for every index in [0, n) with at most limit calls running at
// once. The first error stops new calls from being admitted and is returned
// wrapped in sentinel.ErrPartialBatch. Calls already admitted keep the caller's
// ctx and run to completion; their effects are not rolled back.
func Run(ctx context.Context, limit, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	admitted := 0
	for i := 0; i < n; i++ {
		// g.Go blocks while the group is at its limit, so this check also sees
		// failures from calls that finished while we were waiting.
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return fn(ctx, i)
		})
		admitted++
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrPartialBatch, err)
	}
	if admitted < n {
		// parent ctx was cancelled before every call was admitted
		return fmt.Errorf("%w: %w", sentinel.ErrPartialBatch, context.Cause(gctx))
	}
	return nil
}
