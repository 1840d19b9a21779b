// Package lanes implements the trellis update once, generic over the width
// of the data-parallel lane it runs on.
//
// A lane type provides the handful of byte-wise operations the butterfly
// needs: XOR, rounding average, saturating add and subtract, compare,
// select-by-min, interleave, movemask and a horizontal minimum. Scalar
// processes one state per operation, V128 sixteen (SSE2/NEON width) and
// V256 thirty-two (AVX2 width). V128 and V256 pack bytes into uint64 words
// and operate on all of them at once (SWAR), so every backend is plain Go
// and all of them produce identical metrics and decisions.
package lanes
