// SPDX-License-Identifier: MIT

// Package overall provides the lightweight companion reduction to package
// paircov: global min / max / mean / valid-count of every present scalar
// across all series, plus a per-position valid-count vector.
//
// It follows the same map-then-associative-merge discipline (FromVector +
// Merge with a neutral identity: min starts at +Inf, max at −Inf, sums and
// counts at zero), so the same execution engine can fold it under arbitrary
// partitioning. Its purpose is diagnostic: CrossCheck compares the summary
// mean against the covariance-derived grand mean and surfaces any material
// discrepancy — a cheap tripwire for ingestion or pipeline defects.
package overall

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadDimension is returned when a requested dimension is negative.
	// Dimension 0 is legal: it is the dimension of the empty series, and
	// New(0) equals FromVector(nil).
	ErrBadDimension = errors.New("overall: dimension must be >= 0")

	// ErrDimensionMismatch indicates operands that disagree on the dimension.
	ErrDimensionMismatch = errors.New("overall: dimension mismatch")

	// ErrNilSummary indicates a nil *Summary operand.
	ErrNilSummary = errors.New("overall: nil summary")

	// ErrBadTolerance indicates a CrossCheck tolerance that is negative,
	// NaN or infinite.
	ErrBadTolerance = errors.New("overall: tolerance must be finite and non-negative")

	// ErrMeanDivergence is returned by CrossCheck when the distribution mean
	// and the covariance-derived grand mean disagree beyond tolerance —
	// treat it as a data or pipeline defect, not as noise to ignore.
	ErrMeanDivergence = errors.New("overall: summary mean diverges from covariance grand mean")
)

// Summary is the mergeable descriptive-statistics aggregate.
// The zero-observation Summary (fresh from New) is the identity of Merge.
type Summary struct {
	d      int
	min    float64
	max    float64
	sum    float64
	valid  int64
	perPos []int64
}

// New returns the neutral Summary of dimension d.
// Returns ErrBadDimension when d < 0.
func New(d int) (*Summary, error) {
	if d < 0 {
		return nil, fmt.Errorf("overall: New(%d): %w", d, ErrBadDimension)
	}

	return &Summary{
		d:      d,
		min:    math.Inf(1),
		max:    math.Inf(-1),
		perPos: make([]int64, d),
	}, nil
}

// FromVector maps one series to its one-series Summary. NaN entries are
// missing markers and contribute nothing.
func FromVector(v []float64) *Summary {
	s := &Summary{
		d:      len(v),
		min:    math.Inf(1),
		max:    math.Inf(-1),
		perPos: make([]int64, len(v)),
	}
	s.observe(v)

	return s
}

// Observe folds one more series into s in place.
// Returns ErrDimensionMismatch when len(v) != s.Dim().
func (s *Summary) Observe(v []float64) error {
	if len(v) != s.d {
		return fmt.Errorf("overall: Observe: series of %d into summary of %d: %w", len(v), s.d, ErrDimensionMismatch)
	}
	s.observe(v)

	return nil
}

func (s *Summary) observe(v []float64) {
	for i, x := range v {
		if math.IsNaN(x) {
			continue
		}
		s.min = math.Min(s.min, x)
		s.max = math.Max(s.max, x)
		s.sum += x
		s.valid++
		s.perPos[i]++
	}
}

// Merge returns a fresh Summary combining a and b: min/max by element-wise
// min/max, sums and counts by addition. Associative, commutative, neutral
// identity from New. Neither operand is mutated.
func Merge(a, b *Summary) (*Summary, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("overall: Merge: %w", ErrNilSummary)
	}
	if a.d != b.d {
		return nil, fmt.Errorf("overall: Merge: %d vs %d: %w", a.d, b.d, ErrDimensionMismatch)
	}

	out := &Summary{
		d:      a.d,
		min:    math.Min(a.min, b.min),
		max:    math.Max(a.max, b.max),
		sum:    a.sum + b.sum,
		valid:  a.valid + b.valid,
		perPos: make([]int64, a.d),
	}
	for i := range out.perPos {
		out.perPos[i] = a.perPos[i] + b.perPos[i]
	}

	return out, nil
}

// Add folds q into the receiver in place.
func (s *Summary) Add(q *Summary) error {
	if q == nil {
		return fmt.Errorf("overall: Add: %w", ErrNilSummary)
	}
	if s.d != q.d {
		return fmt.Errorf("overall: Add: %d vs %d: %w", s.d, q.d, ErrDimensionMismatch)
	}

	s.min = math.Min(s.min, q.min)
	s.max = math.Max(s.max, q.max)
	s.sum += q.sum
	s.valid += q.valid
	for i := range s.perPos {
		s.perPos[i] += q.perPos[i]
	}

	return nil
}

// Summarize folds a batch of series of dimension d into one Summary, the
// single-threaded counterpart of folding FromVector results through an
// execution engine. A series of the wrong dimension aborts with
// ErrDimensionMismatch; an empty batch yields the neutral Summary.
func Summarize(d int, series [][]float64) (*Summary, error) {
	total, err := New(d)
	if err != nil {
		return nil, err
	}
	for n, v := range series {
		if err = total.Observe(v); err != nil {
			return nil, fmt.Errorf("overall: Summarize: series %d: %w", n, err)
		}
	}

	return total, nil
}

// Dim returns the series dimension D.
func (s *Summary) Dim() int { return s.d }

// Min returns the smallest present value seen, +Inf for the empty summary.
func (s *Summary) Min() float64 { return s.min }

// Max returns the largest present value seen, −Inf for the empty summary.
func (s *Summary) Max() float64 { return s.max }

// ValidCount returns the number of present scalars seen across all series
// and positions.
func (s *Summary) ValidCount() int64 { return s.valid }

// Mean returns the global mean over present scalars, NaN for the empty
// summary.
func (s *Summary) Mean() float64 {
	if s.valid == 0 {
		return math.NaN()
	}

	return s.sum / float64(s.valid)
}

// PerPosition returns a copy of the per-position valid-count vector
// (calendar-position coverage: perPos[i] counts series with a present value
// on day i).
func (s *Summary) PerPosition() []int64 {
	out := make([]int64, s.d)
	copy(out, s.perPos)

	return out
}

// CrossCheck compares the summary mean against grandMean (the covariance
// side's count-weighted global mean, see paircov.Result.GrandMean) within
// the absolute tolerance tol. Two empty sides (both NaN) agree; one empty
// side or a divergence beyond tol yields ErrMeanDivergence carrying both
// values. tol must be non-negative and finite.
func (s *Summary) CrossCheck(grandMean, tol float64) error {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		return fmt.Errorf("overall: CrossCheck: tolerance %v: %w", tol, ErrBadTolerance)
	}

	mine := s.Mean()
	if math.IsNaN(mine) && math.IsNaN(grandMean) {
		return nil
	}
	if math.IsNaN(mine) || math.IsNaN(grandMean) || math.Abs(mine-grandMean) > tol {
		return fmt.Errorf("overall: CrossCheck: summary mean %v vs grand mean %v (tol %v): %w",
			mine, grandMean, tol, ErrMeanDivergence)
	}

	return nil
}
