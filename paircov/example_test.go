// SPDX-License-Identifier: MIT

package paircov_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nancov/paircov"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleFinalize
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Two daily series with complementary gaps:
//	  x1 = [1, NaN, 3]
//	  x2 = [2, 3,   NaN]
//
// Every statistic keeps its own denominator: position 0 averages over both
// series, position 1 only over x2, and the (0,1) covariance entry is
// estimated from the single series where both days are present.
func ExampleFinalize() {
	nan := math.NaN()

	total, err := paircov.Reduce(3, [][]float64{
		{1, nan, 3},
		{2, 3, nan},
	})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	res, err := paircov.Finalize(total)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	fmt.Printf("mean[0]=%.2f (n=%d)\n", res.Mean[0], res.ValidCount[0])
	fmt.Printf("mean[1]=%.2f (n=%d)\n", res.Mean[1], res.ValidCount[1])
	fmt.Printf("cov[0][1]=%.2f (pairs=%.0f)\n", res.Cov.At(0, 1), res.PairValid.At(0, 1))
	// Output:
	// mean[0]=1.50 (n=2)
	// mean[1]=3.00 (n=1)
	// cov[0][1]=1.50 (pairs=1)
}

// ExampleMerge shows the associative fold that makes the reduction safe to
// partition: merging per-batch partials equals reducing the whole batch.
func ExampleMerge() {
	a := paircov.FromVector([]float64{1, 2})
	b := paircov.FromVector([]float64{3, 6})

	total, err := paircov.Merge(a, b)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	fmt.Printf("count[0]=%d sum[0]=%.0f\n", total.Count(0), total.Sum(0))
	fmt.Printf("pair(0,1)=%d crossSum(0,1)=%.0f\n", total.PairCount(0, 1), total.CrossSum(0, 1))
	// Output:
	// count[0]=2 sum[0]=4
	// pair(0,1)=2 crossSum(0,1)=20
}
