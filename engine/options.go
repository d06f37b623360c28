// SPDX-License-Identifier: MIT

// Package engine: functional configuration for Fold.
package engine

import "runtime"

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultWorkers: serial execution. Parallelism is opt-in because the
	// serial strategy is the reference semantics every parallel run must
	// reproduce.
	DefaultWorkers = 1
)

const panicWorkersInvalid = "engine: WithWorkers: n must be >= 1"

// Option mutates fold options. Safe to apply repeatedly (idempotent).
type Option func(*options)

type options struct {
	workers  int
	failFast bool
}

func defaultOptions() options {
	return options{workers: DefaultWorkers}
}

// WithWorkers sets the number of parallel map workers. n == 1 keeps the
// serial strategy; n > 1 enables the pooled strategy. Panics when n < 1
// (programmer error).
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithMaxWorkers sets the worker count to the number of usable CPUs —
// shorthand for WithWorkers(runtime.GOMAXPROCS(0)).
func WithMaxWorkers() Option {
	return func(o *options) { o.workers = runtime.GOMAXPROCS(0) }
}

// WithFailFast aborts the fold on the first per-record map error instead of
// the default skip-and-report policy. Merge errors abort regardless.
func WithFailFast() Option {
	return func(o *options) { o.failFast = true }
}

// gatherOptions folds user options over the defaults.
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	return o
}
