// SPDX-License-Identifier: MIT

// Package paircov: deriving the final statistics from a grand-total Partial.
// Finalize is the only consumer of a grand total and the only place where
// division happens; everything upstream is pure addition.
package paircov

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Result holds the statistics derived from one grand-total Partial.
// All fields are freshly allocated and safe to retain; the source Partial is
// not referenced after Finalize returns.
type Result struct {
	// Dim is the series dimension D.
	Dim int

	// Mean[i] = sum[i]/count[i]; NaN where count[i] == 0 (permissive mode).
	Mean []float64

	// Cov is the D×D pairwise-valid covariance matrix,
	// cov[i][j] = prod[i][j]/pair[i][j] − Mean[i]·Mean[j].
	// Symmetric by construction; NaN entries where pair[i][j] == 0.
	// Nil only for the degenerate Dim == 0 result (PairValid likewise).
	Cov *mat.SymDense

	// ValidCount[i] is the denominator behind Mean[i].
	ValidCount []int64

	// PairValid holds the per-pair denominators behind Cov, as float64 for
	// gonum interop. Entries are exact (counts are far below 2⁵³).
	PairValid *mat.SymDense
}

// Finalize derives (mean, covariance, counts) from the grand total p.
//
// Stage 1 (Validate): nil check; gather options.
// Stage 2 (Means): mean[i] = sum[i]/count[i], NaN when the position was
// missing in every series.
// Stage 3 (Covariance): for each pair with pair[i][j] > 0,
// cov[i][j] = prod[i][j]/pair[i][j] − mean[i]·mean[j]; NaN otherwise.
// Only the upper triangle is computed; SymDense mirrors it.
//
// In strict mode (WithStrict) any zero count or zero pair count aborts with
// ErrInsufficientData naming the first offending coordinate; in permissive
// mode (default) such entries are NaN and no error is raised.
// Complexity: O(d²).
func Finalize(p *Partial, opts ...Option) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("paircov: Finalize: %w", ErrNilPartial)
	}
	o := gatherOptions(opts...)

	d := p.d
	if d == 0 {
		// The dimension-0 grand total has no positions and no pairs: empty
		// vectors, nil matrices (gonum rejects zero-size SymDense), and
		// nothing for strict mode to complain about.
		return &Result{Dim: 0, Mean: []float64{}, ValidCount: []int64{}}, nil
	}
	res := &Result{
		Dim:        d,
		Mean:       make([]float64, d),
		Cov:        mat.NewSymDense(d, nil),
		ValidCount: make([]int64, d),
		PairValid:  mat.NewSymDense(d, nil),
	}
	copy(res.ValidCount, p.count)

	var i, j int
	for i = 0; i < d; i++ {
		if p.count[i] == 0 {
			if o.strict {
				return nil, fmt.Errorf("paircov: Finalize: position %d: %w", i, ErrInsufficientData)
			}
			res.Mean[i] = math.NaN()

			continue
		}
		res.Mean[i] = p.sum[i] / float64(p.count[i])
	}

	var n int64
	for i = 0; i < d; i++ {
		for j = i; j < d; j++ {
			n = p.pair[i*d+j]
			res.PairValid.SetSym(i, j, float64(n))
			if n == 0 {
				if o.strict {
					return nil, fmt.Errorf("paircov: Finalize: pair (%d,%d): %w", i, j, ErrInsufficientData)
				}
				res.Cov.SetSym(i, j, math.NaN())

				continue
			}
			res.Cov.SetSym(i, j, p.prod[i*d+j]/float64(n)-res.Mean[i]*res.Mean[j])
		}
	}

	return res, nil
}

// GrandMean returns the covariance-side global mean: the count-weighted
// average of Mean over positions with at least one observation, i.e.
// Σ sums / Σ counts. Returns NaN for the empty Result. Used by the overall
// distribution cross-check.
func (r *Result) GrandMean() float64 {
	var total float64
	var n int64
	for i, c := range r.ValidCount {
		if c == 0 {
			continue
		}
		total += r.Mean[i] * float64(c)
		n += c
	}
	if n == 0 {
		return math.NaN()
	}

	return total / float64(n)
}
