package viterbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cwbudde/algo-fec/fec/convcoder"
	"github.com/cwbudde/algo-fec/fec/softbits"
	"github.com/cwbudde/algo-fec/internal/testutil"
)

func encode(tb tester, in []byte, tailBiting bool) []byte {
	tb.Helper()

	enc, err := convcoder.New(K, LTEPolynomials[:], tailBiting)
	require.NoError(tb, err)

	coded := make([]byte, enc.EncodedLen(len(in)))
	_, err = enc.Encode(in, coded)
	require.NoError(tb, err)
	return coded
}

func TestFrameDecoderZeroTail(t *testing.T) {
	f, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 64})
	require.NoError(t, err)
	defer f.Close()

	for _, n := range []int{9, 40, 63, 64} {
		in := testutil.RandomBits(int64(n), n)
		symbols := testutil.HardSymbols(encode(t, in, false))
		require.Len(t, symbols, f.SymbolLen(n))

		out := make([]byte, n)
		require.NoError(t, f.Decode(symbols, out, n))
		testutil.RequireBitsEqual(t, out, in)
	}
}

func TestFrameDecoderTailBiting(t *testing.T) {
	f, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 128, TailBiting: true})
	require.NoError(t, err)
	defer f.Close()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(K+2, 128).Draw(t, "n")
		in := testutil.RandomBits(rapid.Int64().Draw(t, "seed"), n)
		symbols := testutil.HardSymbols(encode(t, in, true))
		require.Len(t, symbols, f.SymbolLen(n))

		out := make([]byte, n)
		require.NoError(t, f.Decode(symbols, out, n))
		require.Equal(t, in, out)
	})
}

func TestFrameDecoderTailBitingCorrectsError(t *testing.T) {
	f, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 40, TailBiting: true})
	require.NoError(t, err)
	defer f.Close()

	in := testutil.RandomBits(11, 40)
	symbols := testutil.HardSymbols(encode(t, in, true))
	symbols[61] ^= 0xFF

	out := make([]byte, 40)
	require.NoError(t, f.Decode(symbols, out, 40))
	testutil.RequireBitsEqual(t, out, in)
}

func TestFrameDecoderFloat(t *testing.T) {
	for _, tailBiting := range []bool{false, true} {
		f, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 80, TailBiting: tailBiting})
		require.NoError(t, err)

		in := testutil.RandomBits(21, 80)
		coded := encode(t, in, tailBiting)

		samples := make([]float64, len(coded))
		softbits.BPSK(samples, coded, 1)
		noise := testutil.DeterministicNoise(4, 0.6, len(samples))
		for i := range samples {
			samples[i] += noise[i]
		}

		out := make([]byte, 80)
		require.NoError(t, f.DecodeFloat(samples, out, 80))
		testutil.RequireBitsEqual(t, out, in)
		require.NoError(t, f.Close())
	}
}

func TestFrameDecoderFloatAllZero(t *testing.T) {
	f, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 16})
	require.NoError(t, err)

	out := make([]byte, 16)
	assert.NoError(t, f.DecodeFloat(make([]float64, f.SymbolLen(16)), out, 16))
}

func TestFrameDecoderInt16(t *testing.T) {
	f, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 48})
	require.NoError(t, err)
	defer f.Close()

	in := testutil.RandomBits(31, 48)
	coded := encode(t, in, false)
	noise := testutil.DeterministicNoise(8, 4000, len(coded))

	samples := make([]int16, len(coded))
	for i, b := range coded {
		v := -12000.0
		if b == 1 {
			v = 12000
		}
		samples[i] = int16(v + noise[i])
	}

	out := make([]byte, 48)
	require.NoError(t, f.DecodeInt16(samples, out, 48))
	testutil.RequireBitsEqual(t, out, in)

	assert.NoError(t, f.DecodeInt16(make([]int16, f.SymbolLen(48)), out, 48))
}

func TestFrameDecoderGain(t *testing.T) {
	f, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 16})
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultGain), f.Gain())

	require.NoError(t, f.SetGain(64))
	assert.Equal(t, 64.0, f.Gain())
	assert.ErrorIs(t, f.SetGain(0), ErrInvalidGain)
	assert.ErrorIs(t, f.SetGain(-1), ErrInvalidGain)
	assert.Equal(t, 64.0, f.Gain())

	_, err = NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 16, Gain: -3})
	assert.ErrorIs(t, err, ErrInvalidGain)
}

func TestFrameDecoderErrors(t *testing.T) {
	_, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials})
	assert.ErrorIs(t, err, ErrInvalidFrameLength)

	_, err = NewFrameDecoder(FrameConfig{Polys: [Rate]int{1, 2, 3}, MaxFrameLen: 8})
	assert.ErrorIs(t, err, ErrInvalidPolynomial)

	zt, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 32})
	require.NoError(t, err)
	tb, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: 32, TailBiting: true})
	require.NoError(t, err)

	out := make([]byte, 64)
	assert.ErrorIs(t, zt.Decode(make([]byte, 300), out, 33), ErrFrameTooLong)
	assert.ErrorIs(t, zt.Decode(make([]byte, 300), out, 0), ErrInvalidFrameLength)
	assert.ErrorIs(t, zt.Decode(make([]byte, 3*32), out, 32), ErrInvalidLength)
	assert.ErrorIs(t, zt.Decode(make([]byte, 3*38), out[:31], 32), ErrInvalidLength)
	assert.ErrorIs(t, tb.Decode(make([]byte, 3*6), out, Tail), ErrInvalidFrameLength)
	assert.ErrorIs(t, tb.DecodeFloat(make([]float64, 3*7), out, 8), ErrInvalidLength)
	assert.NoError(t, tb.Decode(make([]byte, 3*7), out, 7))

	require.NoError(t, zt.Close())
	assert.NoError(t, zt.Close())
	assert.ErrorIs(t, zt.Decode(make([]byte, 300), out, 8), ErrClosed)

	var nilFrame *FrameDecoder
	assert.NoError(t, nilFrame.Close())
}

func BenchmarkFrameDecoderTailBiting(b *testing.B) {
	const n = 40
	f, err := NewFrameDecoder(FrameConfig{Polys: LTEPolynomials, MaxFrameLen: n, TailBiting: true})
	require.NoError(b, err)

	in := testutil.RandomBits(1, n)
	symbols := testutil.HardSymbols(encode(b, in, true))
	out := make([]byte, n)

	b.SetBytes(int64(len(symbols)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = f.Decode(symbols, out, n)
	}
}
