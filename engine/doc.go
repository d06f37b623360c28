// SPDX-License-Identifier: MIT

// Package engine executes map/merge reductions: it applies a pure map
// function over a lazily-produced sequence and folds the mapped values with
// a caller-supplied associative, commutative combiner.
//
// The contract is deliberately minimal so that the statistics packages
// (paircov, overall) stay engine-agnostic and single-thread testable:
//   - the map function must be pure (no shared mutable state between
//     invocations);
//   - the merge function must be associative and commutative with the
//     caller's identity value as its neutral element;
//   - under those two obligations Fold returns the same result for any
//     worker count, partitioning or interleaving.
//
// Execution is serial by default; WithWorkers(n) for n > 1 runs the map
// phase on an ants goroutine pool with one private accumulator per worker
// and a final merge barrier. Per-record map errors are skipped and counted
// (never aborting the fold) unless WithFailFast is set; merge errors are
// structural and always abort.
package engine
