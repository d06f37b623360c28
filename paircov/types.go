// SPDX-License-Identifier: MIT

// Package paircov: the Partial value type and its accessors.
// Matrices are stored row-major in flat slices (one allocation, cache
// friendly); counts are integers so that merges of counts are exact.
package paircov

import "fmt"

// Partial is a mergeable aggregate over zero or more series of dimension d.
//
// Fields (all length d or d×d row-major):
//   - count:  count[i] = number of series with a present value at i.
//   - sum:    sum[i]   = Σ v[i] over those series.
//   - prod:   prod[i*d+j] = Σ v[i]*v[j] over series where BOTH i and j are
//     present.
//   - pair:   pair[i*d+j] = number of such series.
//
// Invariant: count[i] == pair[i*d+i] for all i. The prod and pair matrices
// are symmetric by construction.
//
// The zero-observation Partial (fresh from New) is the identity element of
// Merge. A Partial is never mutated by Merge; Add mutates its receiver only.
type Partial struct {
	d     int
	count []int64
	sum   []float64
	prod  []float64
	pair  []int64
}

// New returns the neutral Partial of dimension d (all fields zero).
// d == 0 is the neutral element of the empty series, the same value
// FromVector(nil) produces. Returns ErrBadDimension when d < 0.
// Complexity: O(d²) memory.
func New(d int) (*Partial, error) {
	if d < 0 {
		return nil, fmt.Errorf("paircov: New(%d): %w", d, ErrBadDimension)
	}

	return &Partial{
		d:     d,
		count: make([]int64, d),
		sum:   make([]float64, d),
		prod:  make([]float64, d*d),
		pair:  make([]int64, d*d),
	}, nil
}

// Dim returns the dimension D of the partial.
func (p *Partial) Dim() int { return p.d }

// Count returns the number of present observations at position i.
// Out-of-range indices report zero; the accessor is meant for inspection,
// Finalize is the real consumer.
func (p *Partial) Count(i int) int64 {
	if i < 0 || i >= p.d {
		return 0
	}

	return p.count[i]
}

// Sum returns the running sum of present observations at position i.
func (p *Partial) Sum(i int) float64 {
	if i < 0 || i >= p.d {
		return 0
	}

	return p.sum[i]
}

// PairCount returns the number of series where positions i and j are both
// present — the denominator of cov[i][j].
func (p *Partial) PairCount(i, j int) int64 {
	if i < 0 || i >= p.d || j < 0 || j >= p.d {
		return 0
	}

	return p.pair[i*p.d+j]
}

// CrossSum returns Σ v[i]*v[j] over the jointly-present series.
func (p *Partial) CrossSum(i, j int) float64 {
	if i < 0 || i >= p.d || j < 0 || j >= p.d {
		return 0
	}

	return p.prod[i*p.d+j]
}

// Counts returns a copy of the per-position count vector.
func (p *Partial) Counts() []int64 {
	out := make([]int64, p.d)
	copy(out, p.count)

	return out
}

// Clone returns a deep, independent copy of p.
// Complexity: O(d²).
func (p *Partial) Clone() *Partial {
	q := &Partial{
		d:     p.d,
		count: make([]int64, len(p.count)),
		sum:   make([]float64, len(p.sum)),
		prod:  make([]float64, len(p.prod)),
		pair:  make([]int64, len(p.pair)),
	}
	copy(q.count, p.count)
	copy(q.sum, p.sum)
	copy(q.prod, p.prod)
	copy(q.pair, p.pair)

	return q
}
