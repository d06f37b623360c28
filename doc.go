// Package nancov estimates element-wise means and pairwise-valid covariance
// matrices over large collections of fixed-length series with missing
// entries (NaN markers), using only a pure map plus an associative,
// commutative merge — so any execution engine may partition, reorder and
// retry the work without changing the result.
//
// 🚀 What is nancov?
//
//	A small, composable toolkit for NaN-aware distributed statistics:
//		• halfvec — fixed-width binary16 codec, bit-exact NaN round trips
//		• paircov — mergeable partial statistics → mean & covariance with
//		  per-pair denominators (no series is discarded for having gaps)
//		• overall — min/max/mean/count diagnostic reduction + cross-check
//		• engine  — serial or pooled map/merge fold over lazy sequences
//		• station — the per-measurement driver: decode, reduce, finalize,
//		  eigen-decompose, log
//
// ✨ Why pairwise-valid?
//
//   - Real observational series are gappy; dropping every incomplete series
//     wastes nearly all data
//   - mean[i] and cov[i][j] need different denominators — nancov tracks
//     validity per position AND per position pair
//   - Merges are associative & commutative with a neutral identity, so the
//     grand total is deterministic under any parallel schedule
//
// Quick sketch:
//
//	records ──decode──▶ series ──map──▶ partials ──merge──▶ grand total
//	                                                           │
//	                                             finalize ◀────┘
//	                                      (mean, covariance, counts)
//
// Dive into the per-package docs for contracts, error taxonomies and worked
// examples.
//
//	go get github.com/katalvlaran/nancov
package nancov
