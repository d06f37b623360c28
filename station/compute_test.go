// SPDX-License-Identifier: MIT

package station_test

import (
	"context"
	"errors"
	"iter"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/nancov/halfvec"
	"github.com/katalvlaran/nancov/paircov"
	"github.com/katalvlaran/nancov/station"
)

const epsTight = 1e-9

var nan = math.NaN()

// memSource serves records from memory, keyed by measurement code — the
// test stand-in for the real store-backed query.
type memSource struct {
	byCode map[station.Measurement][]station.Record
	err    error
}

func (s *memSource) Records(_ context.Context, m station.Measurement) (iter.Seq[station.Record], error) {
	if s.err != nil {
		return nil, s.err
	}

	return slices.Values(s.byCode[m]), nil
}

// rec builds a record with an encoded series; values must be binary16-exact
// for the equality assertions below (small integers are).
func rec(m station.Measurement, id string, year int, series []float64) station.Record {
	return station.Record{
		StationID:   id,
		Measurement: m,
		Year:        year,
		Series:      halfvec.Encode(series),
	}
}

func TestCompute_NilSource(t *testing.T) {
	t.Parallel()

	_, err := station.Compute(context.Background(), nil, "TMAX")
	assert.ErrorIs(t, err, station.ErrNilSource)
}

func TestCompute_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("store offline")
	_, err := station.Compute(context.Background(), &memSource{err: boom}, "TMAX")
	assert.ErrorIs(t, err, boom)
}

// TestCompute_PairwiseValid runs the canonical two-series example through
// the whole driver and checks every per-position denominator.
func TestCompute_PairwiseValid(t *testing.T) {
	t.Parallel()

	src := &memSource{byCode: map[station.Measurement][]station.Record{
		"TMAX": {
			rec("TMAX", "ST001", 1980, []float64{1, nan, 3}),
			rec("TMAX", "ST002", 1980, []float64{2, 3, nan}),
		},
	}}

	a, err := station.Compute(context.Background(), src, "TMAX", station.WithSeriesLength(3))
	require.NoError(t, err)

	assert.Equal(t, int64(2), a.Records)
	assert.Equal(t, int64(0), a.Skipped)

	assert.InDelta(t, 1.5, a.Stats.Mean[0], epsTight)
	assert.InDelta(t, 3.0, a.Stats.Mean[1], epsTight)
	assert.Equal(t, []int64{2, 1, 1}, a.Stats.ValidCount)
	assert.InDelta(t, 1.5, a.Stats.Cov.At(0, 1), epsTight)
	assert.Equal(t, 1.0, a.Stats.PairValid.At(0, 1))

	// The (1,2) pair has no joint observation → permissive NaN covariance,
	// so the eigen step is skipped rather than fed NaNs.
	assert.True(t, math.IsNaN(a.Stats.Cov.At(1, 2)))
	assert.Nil(t, a.Eigenvalues)
	assert.Nil(t, a.Eigenvectors)

	// Overall summary over valid scalars {1, 3, 2, 3}.
	assert.Equal(t, int64(4), a.Overall.ValidCount())
	assert.Equal(t, 1.0, a.Overall.Min())
	assert.Equal(t, 3.0, a.Overall.Max())
	assert.InDelta(t, 2.25, a.Overall.Mean(), epsTight)
	assert.Equal(t, []int64{2, 1, 1}, a.Overall.PerPosition())
}

// TestCompute_EigenDescending checks the eigen pairs on a complete data set
// with a hand-computable covariance: [[1, 1.5], [1.5, 2.25]] has eigenvalues
// 3.25 and 0.
func TestCompute_EigenDescending(t *testing.T) {
	t.Parallel()

	src := &memSource{byCode: map[station.Measurement][]station.Record{
		"PRCP": {
			rec("PRCP", "ST001", 1990, []float64{1, 2}),
			rec("PRCP", "ST002", 1990, []float64{3, 5}),
		},
	}}

	a, err := station.Compute(context.Background(), src, "PRCP", station.WithSeriesLength(2))
	require.NoError(t, err)
	require.Len(t, a.Eigenvalues, 2)

	assert.InDelta(t, 3.25, a.Eigenvalues[0], epsTight)
	assert.InDelta(t, 0.0, a.Eigenvalues[1], epsTight)
	assert.GreaterOrEqual(t, a.Eigenvalues[0], a.Eigenvalues[1], "descending order")

	// Column k must be the eigenvector of Eigenvalues[k]: check A·v = λ·v.
	for k := 0; k < 2; k++ {
		v0, v1 := a.Eigenvectors.At(0, k), a.Eigenvectors.At(1, k)
		lambda := a.Eigenvalues[k]
		assert.InDelta(t, lambda*v0, a.Stats.Cov.At(0, 0)*v0+a.Stats.Cov.At(0, 1)*v1, epsTight, "col %d row 0", k)
		assert.InDelta(t, lambda*v1, a.Stats.Cov.At(1, 0)*v0+a.Stats.Cov.At(1, 1)*v1, epsTight, "col %d row 1", k)
	}
}

// TestCompute_SkipsMalformed: a record with a torn series is skipped and
// counted; the healthy records still reduce.
func TestCompute_SkipsMalformed(t *testing.T) {
	t.Parallel()

	torn := rec("TMAX", "ST666", 1970, []float64{1, 2, 3})
	torn.Series = torn.Series[:5] // not a multiple of the element size

	wrongDim := rec("TMAX", "ST667", 1971, []float64{1, 2})

	src := &memSource{byCode: map[station.Measurement][]station.Record{
		"TMAX": {
			rec("TMAX", "ST001", 1980, []float64{1, 2, 3}),
			torn,
			wrongDim,
			rec("TMAX", "ST002", 1981, []float64{2, 3, 4}),
		},
	}}

	a, err := station.Compute(context.Background(), src, "TMAX",
		station.WithSeriesLength(3), station.WithLogger(zap.NewNop()))
	require.NoError(t, err)

	assert.Equal(t, int64(2), a.Records)
	assert.Equal(t, int64(2), a.Skipped)
	assert.Equal(t, []int64{2, 2, 2}, a.Stats.ValidCount)
}

// TestCompute_Strict: strict finalization surfaces ErrInsufficientData for
// a measurement with an unobserved pair.
func TestCompute_Strict(t *testing.T) {
	t.Parallel()

	src := &memSource{byCode: map[station.Measurement][]station.Record{
		"SNOW": {
			rec("SNOW", "ST001", 2000, []float64{1, nan}),
		},
	}}

	_, err := station.Compute(context.Background(), src, "SNOW",
		station.WithSeriesLength(2), station.WithStrict())
	assert.ErrorIs(t, err, paircov.ErrInsufficientData)
}

// TestCompute_PooledMatchesSerial: the driver yields identical counts and
// means for serial and pooled folds.
func TestCompute_PooledMatchesSerial(t *testing.T) {
	t.Parallel()

	records := make([]station.Record, 0, 60)
	for y := 0; y < 60; y++ {
		v := []float64{float64(y % 7), nan, float64(y % 13)}
		if y%4 == 0 {
			v[1] = float64(y % 5)
		}
		records = append(records, rec("TAVG", "ST", 1950+y, v))
	}
	src := &memSource{byCode: map[station.Measurement][]station.Record{"TAVG": records}}

	serial, err := station.Compute(context.Background(), src, "TAVG", station.WithSeriesLength(3))
	require.NoError(t, err)
	pooled, err := station.Compute(context.Background(), src, "TAVG",
		station.WithSeriesLength(3), station.WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, serial.Records, pooled.Records)
	assert.Equal(t, serial.Stats.ValidCount, pooled.Stats.ValidCount)
	for i := range serial.Stats.Mean {
		assert.InDelta(t, serial.Stats.Mean[i], pooled.Stats.Mean[i], epsTight, "mean[%d]", i)
	}
}

func TestComputeAll(t *testing.T) {
	t.Parallel()

	src := &memSource{byCode: map[station.Measurement][]station.Record{
		"TMAX": {rec("TMAX", "A", 1980, []float64{1, 2})},
		"TMIN": {rec("TMIN", "A", 1980, []float64{-3, -4})},
	}}

	out, err := station.ComputeAll(context.Background(), src,
		[]station.Measurement{"TMAX", "TMIN", "TMAX"}, // duplicate collapses
		station.WithSeriesLength(2))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out["TMAX"].Records)
	assert.Equal(t, -4.0, out["TMIN"].Overall.Min())

	_, err = station.ComputeAll(context.Background(), src, nil)
	assert.ErrorIs(t, err, station.ErrNoMeasurements)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { station.WithSeriesLength(0) })
	assert.Panics(t, func() { station.WithWorkers(0) })
	assert.Panics(t, func() { station.WithLogger(nil) })
	assert.Panics(t, func() { station.WithCrossCheckTol(-0.5) })
	assert.Panics(t, func() { station.WithCrossCheckTol(math.NaN()) })
}
