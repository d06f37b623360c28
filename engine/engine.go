// SPDX-License-Identifier: MIT

// Package engine: the Fold entry point and its two execution strategies.
package engine

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

var (
	// ErrNilFunc indicates a nil map or merge function.
	ErrNilFunc = errors.New("engine: map and merge functions must be non-nil")

	// ErrRecordSkipped wraps the first per-record map error observed during a
	// fold; it is reported through Report.FirstErr (or returned directly
	// under WithFailFast), never silently dropped.
	ErrRecordSkipped = errors.New("engine: record skipped")
)

// MapFunc turns one input value into one mergeable partial.
// It must be a pure function of its argument.
type MapFunc[V, P any] func(V) (P, error)

// MergeFunc folds two partials into a fresh one. It must be associative and
// commutative and must not mutate its operands.
type MergeFunc[P any] func(P, P) (P, error)

// Report describes what a completed (or aborted) fold actually processed.
type Report struct {
	// Mapped is the number of records successfully mapped and merged.
	Mapped int64

	// Skipped is the number of records whose map call failed and was
	// skipped under the default skip-and-report policy.
	Skipped int64

	// FirstErr is a sample of the first skip cause (wrapped in
	// ErrRecordSkipped), nil when nothing was skipped.
	FirstErr error
}

// Fold reduces seq to a single partial: identity() seeds each accumulator,
// mapFn maps every element, mergeFn folds the results. The identity factory
// is called once per worker so that accumulators are never shared.
//
// Policy:
//   - ctx cancellation aborts with ctx.Err(); already-merged work is
//     discarded.
//   - a map error skips that record (counted in Report) unless WithFailFast
//     was given, in which case the fold aborts with that error.
//   - a merge error always aborts: it signals a structural defect
//     (e.g. dimension mismatch), not bad data.
//
// The final Report is valid whenever err == nil.
func Fold[V, P any](
	ctx context.Context,
	seq iter.Seq[V],
	identity func() P,
	mapFn MapFunc[V, P],
	mergeFn MergeFunc[P],
	opts ...Option,
) (P, Report, error) {
	var zero P
	if seq == nil || identity == nil || mapFn == nil || mergeFn == nil {
		return zero, Report{}, fmt.Errorf("engine: Fold: %w", ErrNilFunc)
	}
	o := gatherOptions(opts...)

	if o.workers == 1 {
		return foldSerial(ctx, seq, identity, mapFn, mergeFn, o)
	}

	return foldPool(ctx, seq, identity, mapFn, mergeFn, o)
}

// foldSerial is the reference strategy: one accumulator, input order.
func foldSerial[V, P any](
	ctx context.Context,
	seq iter.Seq[V],
	identity func() P,
	mapFn MapFunc[V, P],
	mergeFn MergeFunc[P],
	o options,
) (P, Report, error) {
	var zero P
	var rep Report
	acc := identity()

	for v := range seq {
		if err := ctx.Err(); err != nil {
			return zero, Report{}, err
		}

		p, err := mapFn(v)
		if err != nil {
			if o.failFast {
				return zero, Report{}, fmt.Errorf("%w: %w", ErrRecordSkipped, err)
			}
			rep.Skipped++
			if rep.FirstErr == nil {
				rep.FirstErr = fmt.Errorf("%w: %w", ErrRecordSkipped, err)
			}

			continue
		}

		if acc, err = mergeFn(acc, p); err != nil {
			return zero, Report{}, fmt.Errorf("engine: Fold: merge: %w", err)
		}
		rep.Mapped++
	}

	return acc, rep, nil
}

// foldPool fans the map phase out to an ants pool: each worker drains a
// shared channel into its private accumulator, then the per-worker partials
// are merged behind a full barrier.
func foldPool[V, P any](
	ctx context.Context,
	seq iter.Seq[V],
	identity func() P,
	mapFn MapFunc[V, P],
	mergeFn MergeFunc[P],
	o options,
) (P, Report, error) {
	var zero P

	pool, err := ants.NewPool(o.workers)
	if err != nil {
		return zero, Report{}, fmt.Errorf("engine: Fold: pool: %w", err)
	}
	defer pool.Release()

	// abort cancels producer and workers on the first fatal error.
	ctx, abort := context.WithCancel(ctx)
	defer abort()

	var (
		in      = make(chan V)
		locals  = make([]P, o.workers)
		wg      sync.WaitGroup
		mapped  atomic.Int64
		skipped atomic.Int64

		errOnce  sync.Once
		fatalErr error
		skipOnce sync.Once
		firstErr error
	)
	fail := func(e error) {
		errOnce.Do(func() { fatalErr = e })
		abort()
	}

	for w := 0; w < o.workers; w++ {
		w := w
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			local := identity()
			for v := range in {
				p, mapErr := mapFn(v)
				if mapErr != nil {
					wrapped := fmt.Errorf("%w: %w", ErrRecordSkipped, mapErr)
					if o.failFast {
						fail(wrapped)

						return
					}
					skipped.Add(1)
					skipOnce.Do(func() { firstErr = wrapped })

					continue
				}
				var mergeErr error
				if local, mergeErr = mergeFn(local, p); mergeErr != nil {
					fail(fmt.Errorf("engine: Fold: merge: %w", mergeErr))

					return
				}
				mapped.Add(1)
			}
			locals[w] = local
		}); submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("engine: Fold: submit: %w", submitErr))

			break
		}
	}

	// Produce lazily; stop at the first cancellation.
	for v := range seq {
		select {
		case in <- v:
		case <-ctx.Done():
			goto drained
		}
	}
drained:
	close(in)
	wg.Wait()

	if fatalErr != nil {
		return zero, Report{}, fatalErr
	}
	if err = ctx.Err(); err != nil {
		return zero, Report{}, err
	}

	// Final merge barrier over the per-worker partials.
	acc := identity()
	for _, local := range locals {
		if acc, err = mergeFn(acc, local); err != nil {
			return zero, Report{}, fmt.Errorf("engine: Fold: final merge: %w", err)
		}
	}

	return acc, Report{Mapped: mapped.Load(), Skipped: skipped.Load(), FirstErr: firstErr}, nil
}
