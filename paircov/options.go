// SPDX-License-Identifier: MIT

// Package paircov: functional configuration for Finalize.
// Defaults are documented constants; WithX constructors validate eagerly and
// panic only on programmer error (nonsensical parameters), matching the
// repository-wide options convention.
package paircov

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultStrict: Finalize is permissive by default — positions and pairs
	// with zero valid observations come back as NaN, the usual nanmean
	// semantics, rather than as an error.
	DefaultStrict = false
)

// Option mutates finalize options. Safe to apply repeatedly (idempotent).
type Option func(*options)

type options struct {
	strict bool
}

func defaultOptions() options {
	return options{strict: DefaultStrict}
}

// WithStrict makes Finalize fail with ErrInsufficientData as soon as any
// position or position pair has zero valid observations, instead of emitting
// NaN entries. Use it when a silent NaN in a downstream eigen decomposition
// would be harder to diagnose than an upfront error.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// gatherOptions folds user options over the defaults.
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	return o
}
