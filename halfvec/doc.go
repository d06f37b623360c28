// SPDX-License-Identifier: MIT

// Package halfvec implements the fixed-width binary codec for half-precision
// (IEEE-754 binary16) value series.
//
// What & Why:
//
//	Daily observation series are stored and shipped as raw binary16 words,
//	two bytes per element, little-endian, with no delimiters, no length
//	prefix and no compression. A series of D elements therefore always
//	occupies exactly D*ElemSize bytes, and the byte length alone carries the
//	dimension. Missing observations are encoded as binary16 NaN, so the
//	codec must round-trip NaN bit patterns exactly: a decoded NaN is the
//	missing-value marker the statistics layer keys on.
//
// Guarantees:
//   - Encode∘Decode is the identity on the byte level for every well-formed
//     input, and Decode∘Encode is the identity on the bit level for every
//     representable binary16 value, including NaN (payload preserved),
//     ±Inf and signed zero.
//   - Decode never panics on hostile input; a byte length that is not a
//     multiple of ElemSize yields ErrMalformedEncoding.
//
// The binary16↔binary32 conversion of finite and infinite words is
// delegated to github.com/x448/float16; NaN words bypass float conversion
// entirely and are moved bit by bit, because the hardware float32→float64
// widening quiets signaling NaNs and would corrupt their payloads.
package halfvec

