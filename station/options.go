// SPDX-License-Identifier: MIT

// Package station: functional configuration for the driver.
package station

import (
	"math"

	"go.uber.org/zap"
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultSeriesLength is the deployment dimension: one value per day of
	// a non-leap calendar year.
	DefaultSeriesLength = 365

	// DefaultCrossCheckTol is the absolute tolerance for the mean
	// cross-check between the overall distribution and the covariance
	// grand mean. The two sides fold the very same numbers, so only
	// summation-order effects separate them; anything beyond this is a
	// pipeline defect worth an operator warning.
	DefaultCrossCheckTol = 1e-6
)

const (
	panicSeriesLengthInvalid = "station: WithSeriesLength: d must be >= 1"
	panicWorkersInvalid      = "station: WithWorkers: n must be >= 1"
	panicLoggerNil           = "station: WithLogger: logger must be non-nil"
	panicTolInvalid          = "station: WithCrossCheckTol: tol must be finite, non-negative"
)

// Option mutates driver options. Safe to apply repeatedly (idempotent).
type Option func(*options)

type options struct {
	dim     int
	workers int
	strict  bool
	tol     float64
	log     *zap.Logger
}

func defaultOptions() options {
	return options{
		dim:     DefaultSeriesLength,
		workers: 1,
		tol:     DefaultCrossCheckTol,
		log:     zap.NewNop(),
	}
}

// WithSeriesLength overrides the expected series dimension D (records whose
// decoded series differ are skipped as malformed). Panics when d < 1.
func WithSeriesLength(d int) Option {
	if d < 1 {
		panic(panicSeriesLengthInvalid)
	}

	return func(o *options) { o.dim = d }
}

// WithWorkers sets the engine worker count for the reduction; 1 (default)
// folds serially. Panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithStrict makes finalization fail with paircov.ErrInsufficientData when
// any position or pair has zero valid observations, instead of the default
// NaN entries.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithLogger installs a structured logger for progress, skip totals and
// cross-check warnings. The default is a no-op logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.log = l }
}

// WithCrossCheckTol overrides the mean cross-check tolerance. Panics on
// negative, NaN or infinite values.
func WithCrossCheckTol(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTolInvalid)
	}

	return func(o *options) { o.tol = tol }
}

// gatherOptions folds user options over the defaults.
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	return o
}
