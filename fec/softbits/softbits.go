// Package softbits converts between hard bits, real-valued channel samples
// and the 8 bit soft symbols the Viterbi decoder consumes.
//
// Soft symbols put a confident 0 at 0x00 and a confident 1 at 0xFF, with
// erasures near 0x80. Real-valued samples use the opposite BPSK polarity
// of [BPSK]: positive means 1.
package softbits

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const (
	// Erasure is the soft symbol carrying no information.
	Erasure = 0x80

	// FloatOffset centers quantized float samples between 0 and 255.
	FloatOffset = 127.5

	// Int16Offset centers quantized int16 samples between 0 and 255.
	Int16Offset = 127

	// Clip is the largest soft symbol.
	Clip = 255
)

// Quantizer maps real-valued samples to soft symbols as
// clamp(offset + gain*x, 0, clip), truncated toward zero. It keeps a
// scratch buffer between calls and is not safe for concurrent use.
type Quantizer struct {
	scratch []float64
}

// Float quantizes min(len(dst), len(src)) samples.
func (q *Quantizer) Float(dst []byte, src []float64, gain, offset, clip float64) {
	n := min(len(dst), len(src))
	buf := q.buffer(n)
	vecmath.ScaleBlock(buf, src[:n], gain)
	for i, v := range buf {
		dst[i] = quantize(v, offset, clip)
	}
}

// Int16 quantizes min(len(dst), len(src)) samples.
func (q *Quantizer) Int16(dst []byte, src []int16, gain, offset, clip float64) {
	n := min(len(dst), len(src))
	buf := q.buffer(n)
	for i, v := range src[:n] {
		buf[i] = float64(v)
	}
	vecmath.ScaleBlockInPlace(buf, gain)
	for i, v := range buf {
		dst[i] = quantize(v, offset, clip)
	}
}

func (q *Quantizer) buffer(n int) []float64 {
	if cap(q.scratch) < n {
		q.scratch = make([]float64, n)
	}
	return q.scratch[:n]
}

func quantize(v, offset, clip float64) byte {
	v += offset
	if !(v > 0) {
		return 0
	}
	if v > clip {
		v = clip
	}
	return byte(v)
}

// QuantizeFloat is Quantizer.Float with a throwaway scratch buffer.
func QuantizeFloat(dst []byte, src []float64, gain, offset, clip float64) {
	var q Quantizer
	q.Float(dst, src, gain, offset, clip)
}

// QuantizeInt16 is Quantizer.Int16 with a throwaway scratch buffer.
func QuantizeInt16(dst []byte, src []int16, gain, offset, clip float64) {
	var q Quantizer
	q.Int16(dst, src, gain, offset, clip)
}

// MaxAbs returns the largest magnitude in x, or 0 for an empty slice.
func MaxAbs(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.MaxAbs(x)
}

// MaxAbsInt16 returns the largest magnitude in x as an int, so that
// math.MinInt16 does not overflow.
func MaxAbsInt16(x []int16) int {
	m := 0
	for _, v := range x {
		a := int(v)
		if a < 0 {
			a = -a
		}
		if a > m {
			m = a
		}
	}
	return m
}

// FromBits maps hard bits (0/1 bytes) to confident soft symbols.
func FromBits(dst, bits []byte) {
	for i, b := range bits[:min(len(dst), len(bits))] {
		if b&1 != 0 {
			dst[i] = 0xFF
		} else {
			dst[i] = 0x00
		}
	}
}

// BPSK maps hard bits to antipodal samples of the given amplitude:
// 1 becomes +amplitude and 0 becomes -amplitude.
func BPSK(dst []float64, bits []byte, amplitude float64) {
	for i, b := range bits[:min(len(dst), len(bits))] {
		if b&1 != 0 {
			dst[i] = amplitude
		} else {
			dst[i] = -amplitude
		}
	}
}

// HardDecision slices soft symbols back to bits: 1 for symbols at or above
// Erasure.
func HardDecision(dst, symbols []byte) {
	for i, s := range symbols[:min(len(dst), len(symbols))] {
		if s >= Erasure {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
}

// Gain returns gain/maxAbs, treating magnitudes below floor as floor.
func Gain(gain, maxAbs, floor float64) float64 {
	return gain / math.Max(maxAbs, floor)
}
