// SPDX-License-Identifier: MIT

// Package paircov estimates an element-wise mean vector and a pairwise-valid
// covariance matrix over a collection of fixed-length series that may contain
// missing entries (NaN markers).
//
// Why "pairwise-valid"?
//
//	Discarding every series that contains at least one gap wastes almost all
//	real observational data. Instead each statistic keeps its own denominator:
//	mean[i] averages over the series where position i is present, and
//	cov[i][j] averages the cross product over the series where positions i
//	AND j are simultaneously present. A single scalar sample count cannot
//	express that, which is why the Partial carries a full D×D pair-count
//	matrix next to the per-position count vector.
//
// The mergeable Partial:
//
//	Partial is the unit of distribution. FromVector maps one series to a
//	Partial; Merge folds two Partials by element-wise addition of all four
//	fields (count vector, sum vector, cross-product matrix, pair-count
//	matrix). Merge is associative and commutative, with the neutral Partial
//	(all zeros) as its identity, so any execution engine may partition,
//	reorder, retry and tree-reduce the fold without changing the result.
//	No field of a Partial is shared between concurrent map invocations.
//
// Finalize turns the grand-total Partial into a Result: the mean vector, the
// covariance matrix (gonum mat.SymDense), and both count shapes. Positions or
// pairs with zero valid observations yield NaN by default; WithStrict makes
// them an ErrInsufficientData instead.
//
// The package does no I/O and starts no goroutines; see package engine for
// parallel execution and package station for the end-to-end driver.
package paircov
