// SPDX-License-Identifier: MIT

// Package station: domain-facing types (records, sources, analyses).
package station

import (
	"context"
	"errors"
	"iter"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/nancov/overall"
	"github.com/katalvlaran/nancov/paircov"
)

var (
	// ErrNilSource indicates that a nil Source was passed to Compute.
	ErrNilSource = errors.New("station: nil source")

	// ErrNoMeasurements indicates an empty measurement-code set.
	ErrNoMeasurements = errors.New("station: no measurement codes")
)

// Measurement is an upstream measurement code (e.g. "TMAX", "PRCP").
type Measurement string

// Record is one (station, year, measurement) observation row as delivered by
// upstream ingestion. The driver consumes Series (via halfvec) and
// Measurement; the remaining fields are carried for operator context and
// pass through untouched.
type Record struct {
	StationID   string
	Measurement Measurement
	Year        int
	Latitude    float64
	Longitude   float64
	Elevation   float64
	Region      string

	// Invalid is the upstream count of raw entries it discarded while
	// building Series. Whether to drop overly gappy series is an upstream
	// policy; the reduction accepts any gap pattern.
	Invalid int

	// Series is the halfvec-encoded daily series (binary16, fixed width).
	Series []byte
}

// Source yields the records of one measurement code. Filtering by code is
// the source's responsibility (typically a query pushdown); the driver never
// re-filters. The sequence may be lazy and arbitrarily large.
type Source interface {
	Records(ctx context.Context, m Measurement) (iter.Seq[Record], error)
}

// Analysis is the per-measurement output record.
type Analysis struct {
	Measurement Measurement

	// Stats carries the mean vector, covariance matrix and both count
	// shapes (see paircov.Result).
	Stats *paircov.Result

	// Eigenvalues of the covariance matrix, sorted descending.
	// Nil in permissive mode when the covariance contains NaN entries
	// (some pair had no joint observation) — there is nothing meaningful
	// to decompose then.
	Eigenvalues []float64

	// Eigenvectors has the eigenvector for Eigenvalues[k] in column k.
	// Nil exactly when Eigenvalues is nil.
	Eigenvectors *mat.Dense

	// Overall is the independent distribution summary over the same
	// decoded series.
	Overall *overall.Summary

	// Records and Skipped count accepted and rejected (malformed) input
	// rows for this measurement.
	Records int64
	Skipped int64
}
