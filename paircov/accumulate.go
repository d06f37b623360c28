// SPDX-License-Identifier: MIT

// Package paircov: mapping series into Partials and folding Partials.
// FromVector is the pure "map" half of the reduction; Merge/Add are the
// associative "reduce" half. Reduce is the single-threaded batch fold used
// both directly and as the reference semantics for parallel engines.
package paircov

import (
	"fmt"
	"math"
)

// FromVector maps one series to its one-observation Partial.
//
// Per position i: a NaN marker contributes nothing; a present value
// contributes v[i] to sum[i] and 1 to count[i]. Per pair (i,j): only when
// both positions are present does the pair contribute v[i]*v[j] to the
// cross-product sum and 1 to the pair count. ±Inf is a present (if unusual)
// observation, not a marker.
//
// The empty series yields the neutral Partial of dimension 0.
// Complexity: O(k²+d) time for k present values, O(d²) memory.
func FromVector(v []float64) *Partial {
	d := len(v)
	p := &Partial{
		d:     d,
		count: make([]int64, d),
		sum:   make([]float64, d),
		prod:  make([]float64, d*d),
		pair:  make([]int64, d*d),
	}
	p.observe(v)

	return p
}

// Accumulate folds one more series into p in place.
// Returns ErrDimensionMismatch when len(v) != p.Dim().
//
// Accumulate(v) is equivalent to Add(FromVector(v)) without the O(d²)
// intermediate; use it for single-owner hot loops, never on a Partial that
// another goroutine may read.
func (p *Partial) Accumulate(v []float64) error {
	if len(v) != p.d {
		return fmt.Errorf("paircov: Accumulate: series of %d into partial of %d: %w", len(v), p.d, ErrDimensionMismatch)
	}
	p.observe(v)

	return nil
}

// observe adds one series to the receiver. Callers have validated dimension.
func (p *Partial) observe(v []float64) {
	d := p.d

	// Present-position index, collected once so the pair loop touches only
	// valid coordinates: real-world series are gappy and k is often << d.
	idx := make([]int, 0, d)
	var i, j int
	for i = 0; i < d; i++ {
		if math.IsNaN(v[i]) {
			continue
		}
		idx = append(idx, i)
		p.count[i]++
		p.sum[i] += v[i]
	}

	// Jointly-present pairs; fill both triangles to keep prod/pair symmetric
	// at every intermediate state, not just at finalize time.
	var x, y int
	var cross float64
	for x = 0; x < len(idx); x++ {
		i = idx[x]
		for y = x; y < len(idx); y++ {
			j = idx[y]
			cross = v[i] * v[j]
			p.prod[i*d+j] += cross
			p.pair[i*d+j]++
			if i != j {
				p.prod[j*d+i] += cross
				p.pair[j*d+i]++
			}
		}
	}
}

// Merge returns a fresh Partial equal to the element-wise sum of a and b.
// Merge is associative and commutative, and the neutral Partial is its
// identity; no ordering assumption is ever required of callers. Neither
// operand is mutated.
// Returns ErrNilPartial / ErrDimensionMismatch on invalid operands.
// Complexity: O(d²).
func Merge(a, b *Partial) (*Partial, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("paircov: Merge: %w", ErrNilPartial)
	}
	if a.d != b.d {
		return nil, fmt.Errorf("paircov: Merge: %d vs %d: %w", a.d, b.d, ErrDimensionMismatch)
	}

	out := a.Clone()
	if err := out.Add(b); err != nil {
		return nil, err
	}

	return out, nil
}

// Add folds q into the receiver in place (element-wise addition of every
// field). The receiver must be exclusively owned by the caller.
// Returns ErrNilPartial / ErrDimensionMismatch on invalid operands.
// Complexity: O(d²).
func (p *Partial) Add(q *Partial) error {
	if q == nil {
		return fmt.Errorf("paircov: Add: %w", ErrNilPartial)
	}
	if p.d != q.d {
		return fmt.Errorf("paircov: Add: %d vs %d: %w", p.d, q.d, ErrDimensionMismatch)
	}

	var i int
	for i = range q.count {
		p.count[i] += q.count[i]
		p.sum[i] += q.sum[i]
	}
	for i = range q.prod {
		p.prod[i] += q.prod[i]
		p.pair[i] += q.pair[i]
	}

	return nil
}

// Reduce folds a batch of series of dimension d into one Partial, the
// single-threaded reference of the map/merge reduction. A series of the
// wrong dimension aborts with ErrDimensionMismatch; an empty batch yields
// the neutral Partial.
// Complexity: O(n·d²) worst case.
func Reduce(d int, series [][]float64) (*Partial, error) {
	total, err := New(d)
	if err != nil {
		return nil, err
	}
	for n, v := range series {
		if err = total.Accumulate(v); err != nil {
			return nil, fmt.Errorf("paircov: Reduce: series %d: %w", n, err)
		}
	}

	return total, nil
}
