// Package workerpool runs bounded concurrent work over slices.
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Map calls fn for every item with at most workerCount calls in flight and
// returns the results in item order. The first error cancels the remaining
// calls and is returned.
func Map[T, R any](ctx context.Context, workerCount int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit(workerCount))
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Process runs process for every item. If process returns an error, the pool
// cancels the context, calls onCancel once and stops further work.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	var failed atomic.Bool
	_, err := Map(ctx, workerCount, items, func(ctx context.Context, item T) (struct{}, error) {
		if err := process(ctx, item); err != nil {
			if failed.CompareAndSwap(false, true) && onCancel != nil {
				onCancel()
			}
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	return err
}

// ForEach runs fn for every item without stopping on failures. All errors
// are joined; a canceled ctx stops scheduling new items.
func ForEach[T any](ctx context.Context, workerCount int, items []T, fn func(context.Context, T) error) error {
	var (
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)
	g.SetLimit(limit(workerCount))
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := fn(ctx, item); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func limit(workerCount int) int {
	if workerCount < 1 {
		return 1
	}
	return workerCount
}
