// SPDX-License-Identifier: MIT

// Package halfvec: encode/decode of binary16 series.
// This file holds the two public codec entry points plus small helpers.
// Errors live here as well (the package is small enough to not warrant a
// dedicated errors.go).
package halfvec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// ElemSize is the number of bytes occupied by one encoded element.
const ElemSize = 2

// binary16 field masks and the float64 geometry needed to move a NaN
// payload between the two formats without a float conversion in between.
const (
	signMask16     = 0x8000
	exponentMask16 = 0x7C00
	mantissaMask16 = 0x03FF
	quietBit16     = 0x0200

	// A binary16 word has its sign at bit 15 and a 10-bit mantissa; float64
	// has the sign at bit 63, an 11-bit exponent and a 52-bit mantissa.
	signShift64     = 48 // bit 15 → bit 63
	mantissaShift64 = 42 // 10 payload bits → top of the 52-bit mantissa
	exponentAll64   = 0x7FF0000000000000
)

var (
	// ErrMalformedEncoding indicates that an encoded byte string cannot be a
	// binary16 series: its length is not a multiple of ElemSize.
	ErrMalformedEncoding = errors.New("halfvec: byte length is not a multiple of the element size")

	// ErrLengthMismatch indicates that a decoded series does not have the
	// dimension the caller demanded (DecodeDim only).
	ErrLengthMismatch = errors.New("halfvec: decoded length does not match requested dimension")
)

// Encode serializes v into its fixed-width binary16 representation.
// Each element is narrowed to binary16 (nearest-even; NaN payload preserved
// as far as binary16 can hold it) and written as a little-endian 16-bit word.
// The result is always exactly len(v)*ElemSize bytes. Encode cannot fail.
// Complexity: O(len(v)) time, one allocation.
func Encode(v []float64) []byte {
	buf := make([]byte, len(v)*ElemSize)
	for i, x := range v {
		binary.LittleEndian.PutUint16(buf[i*ElemSize:], encodeWord(x))
	}

	return buf
}

// encodeWord narrows one float64 to a binary16 word. NaN goes through pure
// bit manipulation: the float conversion chain forces the quiet bit, which
// would corrupt signaling-NaN payloads.
func encodeWord(x float64) uint16 {
	if math.IsNaN(x) {
		b := math.Float64bits(x)
		w := uint16(b>>signShift64)&signMask16 | exponentMask16 | uint16(b>>mantissaShift64)&mantissaMask16
		if w&mantissaMask16 == 0 {
			// The payload lives entirely below binary16 precision; an empty
			// mantissa would read back as ±Inf, so it must stay a NaN.
			w |= quietBit16
		}

		return w
	}

	// float32 is a lossless waypoint for every finite/Inf binary16 value.
	return float16.Fromfloat32(float32(x)).Bits()
}

// Decode parses a fixed-width binary16 byte string into a float64 series.
// The dimension is derived from the byte length; NaN words decode to NaN
// (the missing-value marker), ±Inf and signed zero survive exactly.
// Returns ErrMalformedEncoding when len(b) is not a multiple of ElemSize.
// Complexity: O(len(b)) time, one allocation.
func Decode(b []byte) ([]float64, error) {
	if len(b)%ElemSize != 0 {
		return nil, fmt.Errorf("halfvec: Decode(%d bytes): %w", len(b), ErrMalformedEncoding)
	}

	out := make([]float64, len(b)/ElemSize)
	for i := range out {
		out[i] = decodeWord(binary.LittleEndian.Uint16(b[i*ElemSize:]))
	}

	return out, nil
}

// decodeWord widens one binary16 word to float64. All 65536 words are
// meaningful; NaN words are rebuilt bit by bit (sign, all-ones exponent,
// payload at the top of the mantissa) so that encodeWord can recover the
// exact pattern — the float32→float64 hardware conversion quiets sNaNs.
func decodeWord(bits uint16) float64 {
	if bits&exponentMask16 == exponentMask16 && bits&mantissaMask16 != 0 {
		return math.Float64frombits(
			uint64(bits&signMask16)<<signShift64 | exponentAll64 | uint64(bits&mantissaMask16)<<mantissaShift64)
	}

	return float64(float16.Frombits(bits).Float32())
}

// DecodeDim is Decode with an additional dimension check, for callers that
// know the series length up front (the usual case: one calendar year).
// Returns ErrLengthMismatch when the decoded series is not of dimension d.
func DecodeDim(b []byte, d int) ([]float64, error) {
	v, err := Decode(b)
	if err != nil {
		return nil, err
	}
	if len(v) != d {
		return nil, fmt.Errorf("halfvec: DecodeDim: got %d elements, want %d: %w", len(v), d, ErrLengthMismatch)
	}

	return v, nil
}

// EncodedLen reports the byte length of an encoded series of dimension d.
func EncodedLen(d int) int { return d * ElemSize }
