// SPDX-License-Identifier: MIT

// Package paircov: sentinel error set.
// This file defines ONLY package-level sentinel errors. All operations return
// these sentinels (optionally wrapped with fmt.Errorf("...: %w", ErrX) for
// context) and tests match them via errors.Is. No operation panics on
// user-triggered error conditions.

package paircov

import "errors"

var (
	// ErrBadDimension is returned when a requested dimension is negative.
	// Dimension 0 is legal everywhere: it is the dimension of the empty
	// series, and FromVector(nil), New(0) and snapshot decoding all agree
	// on producing its neutral Partial.
	ErrBadDimension = errors.New("paircov: dimension must be >= 0")

	// ErrDimensionMismatch indicates that two operands (a Partial and a
	// series, or two Partials) do not agree on the dimension D.
	ErrDimensionMismatch = errors.New("paircov: dimension mismatch")

	// ErrNilPartial indicates that a nil *Partial was passed where a value
	// was required.
	ErrNilPartial = errors.New("paircov: nil partial")

	// ErrInsufficientData is returned by Finalize in strict mode when some
	// position or position pair has zero valid observations, i.e. the
	// requested statistic has no defined value.
	ErrInsufficientData = errors.New("paircov: zero valid observations for a position or pair")

	// ErrBadSnapshot indicates that an encoded Partial snapshot is internally
	// inconsistent (field lengths do not match its recorded dimension).
	ErrBadSnapshot = errors.New("paircov: malformed partial snapshot")
)
