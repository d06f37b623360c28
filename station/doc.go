// SPDX-License-Identifier: MIT

// Package station is the end-to-end driver: it turns the per-station,
// per-year observation records produced by upstream ingestion into the final
// per-measurement analysis (mean vector, pairwise-valid covariance matrix,
// eigen decomposition, overall distribution summary).
//
// Responsibilities and their owners:
//   - record selection by measurement code — the Source collaborator
//     (a query against whatever store holds the records);
//   - series decoding — package halfvec;
//   - the reduction itself — packages paircov and overall, folded through
//     package engine (serial or pooled, caller's choice);
//   - eigen decomposition of the small resulting covariance matrix —
//     gonum's dense symmetric eigen solver, eigenvalues reported in
//     descending order with eigenvector columns reordered to match.
//
// ComputeAll is a pure function from a set of measurement codes to a map of
// analyses: no state is shared across codes, and a malformed record never
// aborts a reduction — it is skipped, counted and logged. Structured
// logging (zap) covers progress, skip totals and the mean cross-check
// between the overall distribution and the covariance-derived grand mean.
package station
