// SPDX-License-Identifier: MIT

// Package station: the per-measurement reduction driver.
// Compute runs one measurement code end to end; ComputeAll maps a set of
// codes to their analyses with no shared state between codes.
package station

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/nancov/engine"
	"github.com/katalvlaran/nancov/halfvec"
	"github.com/katalvlaran/nancov/overall"
	"github.com/katalvlaran/nancov/paircov"
)

// ErrEigenFailed indicates that the symmetric eigen factorization of a
// finite covariance matrix did not converge.
var ErrEigenFailed = errors.New("station: eigen factorization failed")

// shard pairs the two independent partials folded in a single pass: the
// covariance accumulator and the overall-distribution summary. Merging a
// shard merges both fields, so shard inherits associativity and
// commutativity from its parts.
type shard struct {
	cov *paircov.Partial
	sum *overall.Summary
}

func newShard(d int) func() shard {
	return func() shard {
		// d >= 1 is guaranteed by the options layer; both constructors only
		// reject non-positive dimensions.
		cov, _ := paircov.New(d)
		sum, _ := overall.New(d)

		return shard{cov: cov, sum: sum}
	}
}

func mergeShards(a, b shard) (shard, error) {
	cov, err := paircov.Merge(a.cov, b.cov)
	if err != nil {
		return shard{}, err
	}
	sum, err := overall.Merge(a.sum, b.sum)
	if err != nil {
		return shard{}, err
	}

	return shard{cov: cov, sum: sum}, nil
}

// Compute reduces every record of one measurement code into its Analysis.
//
// Pipeline: Source → halfvec decode → paircov/overall fold (engine-managed,
// serial or pooled) → finalize → eigen decomposition → cross-check.
// A record whose series is malformed or of the wrong dimension is skipped
// and counted, never fatal; see Analysis.Skipped.
func Compute(ctx context.Context, src Source, m Measurement, opts ...Option) (*Analysis, error) {
	if src == nil {
		return nil, fmt.Errorf("station: Compute: %w", ErrNilSource)
	}
	o := gatherOptions(opts...)
	log := o.log.With(zap.String("measurement", string(m)))

	records, err := src.Records(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("station: Compute(%s): source: %w", m, err)
	}

	mapRecord := func(rec Record) (shard, error) {
		v, decErr := halfvec.DecodeDim(rec.Series, o.dim)
		if decErr != nil {
			return shard{}, fmt.Errorf("station %s year %d: %w", rec.StationID, rec.Year, decErr)
		}

		return shard{cov: paircov.FromVector(v), sum: overall.FromVector(v)}, nil
	}

	engineOpts := []engine.Option{engine.WithWorkers(o.workers)}
	total, rep, err := engine.Fold(ctx, records, newShard(o.dim), mapRecord, mergeShards, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("station: Compute(%s): %w", m, err)
	}
	if rep.Skipped > 0 {
		log.Warn("skipped malformed records",
			zap.Int64("skipped", rep.Skipped),
			zap.Int64("accepted", rep.Mapped),
			zap.Error(rep.FirstErr))
	}

	finalizeOpts := []paircov.Option{}
	if o.strict {
		finalizeOpts = append(finalizeOpts, paircov.WithStrict())
	}
	res, err := paircov.Finalize(total.cov, finalizeOpts...)
	if err != nil {
		return nil, fmt.Errorf("station: Compute(%s): %w", m, err)
	}

	a := &Analysis{
		Measurement: m,
		Stats:       res,
		Overall:     total.sum,
		Records:     rep.Mapped,
		Skipped:     rep.Skipped,
	}

	if a.Eigenvalues, a.Eigenvectors, err = eigenDescending(res.Cov); err != nil {
		if !errors.Is(err, errCovNotFinite) {
			return nil, fmt.Errorf("station: Compute(%s): %w", m, err)
		}
		// Permissive mode with unobserved pairs: nothing to decompose.
		log.Warn("covariance has empty pairs, eigen decomposition skipped")
		err = nil
	}

	if ccErr := total.sum.CrossCheck(res.GrandMean(), o.tol); ccErr != nil {
		log.Warn("overall/covariance mean cross-check failed — investigate the pipeline",
			zap.Float64("overall_mean", total.sum.Mean()),
			zap.Float64("grand_mean", res.GrandMean()),
			zap.Error(ccErr))
	}

	log.Info("measurement reduced",
		zap.Int64("records", a.Records),
		zap.Int64("skipped", a.Skipped),
		zap.Int64("valid_scalars", total.sum.ValidCount()))

	return a, nil
}

// ComputeAll maps each measurement code to its Analysis. It is a pure
// function of (codes, source): codes share nothing, and the result map has
// exactly one entry per distinct code. The first failing code aborts.
func ComputeAll(ctx context.Context, src Source, codes []Measurement, opts ...Option) (map[Measurement]*Analysis, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("station: ComputeAll: %w", ErrNoMeasurements)
	}

	out := make(map[Measurement]*Analysis, len(codes))
	for _, m := range codes {
		if _, done := out[m]; done {
			continue
		}
		a, err := Compute(ctx, src, m, opts...)
		if err != nil {
			return nil, fmt.Errorf("station: ComputeAll: %w", err)
		}
		out[m] = a
	}

	return out, nil
}

// errCovNotFinite is internal: the covariance contains NaN entries
// (permissive finalize with unobserved pairs), so eigen decomposition is
// skipped rather than attempted.
var errCovNotFinite = errors.New("station: covariance contains non-finite entries")

// eigenDescending factorizes a finite symmetric matrix and returns its
// eigenvalues sorted descending with eigenvector columns reordered to match
// (gonum reports them ascending).
func eigenDescending(cov *mat.SymDense) ([]float64, *mat.Dense, error) {
	d := cov.SymmetricDim()
	var i, j int
	for i = 0; i < d; i++ {
		for j = i; j < d; j++ {
			if math.IsNaN(cov.At(i, j)) {
				return nil, nil, errCovNotFinite
			}
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(cov, true); !ok {
		return nil, nil, ErrEigenFailed
	}

	asc := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	vals := make([]float64, d)
	ordered := mat.NewDense(d, d, nil)
	for j = 0; j < d; j++ {
		src := d - 1 - j // ascending → descending
		vals[j] = asc[src]
		for i = 0; i < d; i++ {
			ordered.Set(i, j, vecs.At(i, src))
		}
	}

	return vals, ordered, nil
}
