package softbits

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestQuantizeFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want byte
	}{
		{"zero", 0, 127},
		{"full positive", 1, 227},
		{"full negative", -1, 27},
		{"clipped high", 10, 255},
		{"clipped low", -10, 0},
		{"truncates", 0.004, 127},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, 1)
			QuantizeFloat(dst, []float64{tt.in}, 100, FloatOffset, Clip)
			assert.Equal(t, tt.want, dst[0])
		})
	}
}

func TestQuantizeInt16(t *testing.T) {
	src := []int16{0, 100, -100, math.MaxInt16, math.MinInt16}
	dst := make([]byte, len(src))
	QuantizeInt16(dst, src, 1, Int16Offset, Clip)
	assert.Equal(t, []byte{127, 227, 27, 255, 0}, dst)
}

func TestQuantizerReusesScratch(t *testing.T) {
	var q Quantizer
	dst := make([]byte, 8)
	q.Float(dst, make([]float64, 8), 1, FloatOffset, Clip)
	first := &q.scratch[0]
	q.Float(dst[:4], make([]float64, 4), 1, FloatOffset, Clip)
	assert.Same(t, first, &q.scratch[0])
}

func TestQuantizeShorterDst(t *testing.T) {
	dst := make([]byte, 2)
	QuantizeFloat(dst, []float64{1, -1, 1}, 100, FloatOffset, Clip)
	assert.Equal(t, []byte{227, 27}, dst)
}

func TestQuantizePreservesSign(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(-1, 1).Draw(t, "x")
		dst := make([]byte, 1)
		QuantizeFloat(dst, []float64{x}, 100, FloatOffset, Clip)
		switch {
		case x > 0.01:
			require.Greater(t, dst[0], byte(127))
		case x < -0.01:
			require.Less(t, dst[0], byte(127))
		}
	})
}

func TestMaxAbs(t *testing.T) {
	assert.Equal(t, 0.0, MaxAbs(nil))
	assert.Equal(t, 3.5, MaxAbs([]float64{1, -3.5, 2}))
	assert.Equal(t, 0, MaxAbsInt16(nil))
	assert.Equal(t, 32768, MaxAbsInt16([]int16{5, math.MinInt16, 7}))
}

func TestFromBitsAndHardDecision(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bits := rapid.SliceOf(rapid.IntRange(0, 1)).Draw(t, "bits")
		in := make([]byte, len(bits))
		for i, b := range bits {
			in[i] = byte(b)
		}

		soft := make([]byte, len(in))
		FromBits(soft, in)
		out := make([]byte, len(in))
		HardDecision(out, soft)
		require.Equal(t, in, out)
	})
}

func TestBPSK(t *testing.T) {
	dst := make([]float64, 3)
	BPSK(dst, []byte{1, 0, 1}, 0.5)
	assert.Equal(t, []float64{0.5, -0.5, 0.5}, dst)
}

func TestGain(t *testing.T) {
	assert.Equal(t, 50.0, Gain(100, 2, 1e-9))
	assert.Equal(t, 100/1e-9, Gain(100, 0, 1e-9))
}
