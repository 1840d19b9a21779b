// Package convcoder implements a rate 1/R binary convolutional encoder,
// either zero-tail terminated or tail-biting.
//
// Bits are bytes holding 0 or 1. The encoder shifts each input bit into a
// K bit register, newest bit lowest, and emits parity(register & poly[j])
// for every generator j. A negative polynomial inverts that output.
package convcoder

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrInvalidRate indicates a constraint length or polynomial count the
	// encoder cannot handle.
	ErrInvalidRate = errors.New("convcoder: invalid rate")

	// ErrInvalidFrameLength indicates an input frame that is too short.
	ErrInvalidFrameLength = errors.New("convcoder: invalid frame length")

	// ErrShortBuffer indicates an output slice smaller than EncodedLen.
	ErrShortBuffer = errors.New("convcoder: output buffer too short")
)

// Encoder is a convolutional encoder configuration. The zero value is not
// usable; build one with New.
type Encoder struct {
	K          int
	R          int
	Polys      []int
	TailBiting bool
}

// New returns an encoder with constraint length k (2..32) and rate 1/r,
// where r = len(polys).
func New(k int, polys []int, tailBiting bool) (*Encoder, error) {
	if k < 2 || k > 32 {
		return nil, fmt.Errorf("%w: constraint length %d", ErrInvalidRate, k)
	}

	if len(polys) == 0 {
		return nil, fmt.Errorf("%w: no polynomials", ErrInvalidRate)
	}

	for j, p := range polys {
		if p == 0 || abs(p) >= 1<<k {
			return nil, fmt.Errorf("%w: poly[%d] = %#x does not fit K=%d", ErrInvalidRate, j, p, k)
		}
	}

	return &Encoder{
		K:          k,
		R:          len(polys),
		Polys:      append([]int(nil), polys...),
		TailBiting: tailBiting,
	}, nil
}

// EncodedLen returns the number of output bits for an n bit frame.
func (e *Encoder) EncodedLen(n int) int {
	if e.TailBiting {
		return e.R * n
	}
	return e.R * (n + e.K - 1)
}

// Encode writes the codeword of in to out and returns its length.
// Frames must be longer than K+1 bits.
func (e *Encoder) Encode(in, out []byte) (int, error) {
	n := len(in)
	if n <= e.K+1 {
		return 0, fmt.Errorf("%w: %d bits, need more than %d", ErrInvalidFrameLength, n, e.K+1)
	}

	total := e.EncodedLen(n)
	if len(out) < total {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrShortBuffer, len(out), total)
	}

	var sr uint32
	if e.TailBiting {
		for _, b := range in[n-(e.K-1):] {
			sr = sr<<1 | uint32(b&1)
		}
	}

	pos := 0
	push := func(b uint32) {
		sr = sr<<1 | b
		for _, p := range e.Polys {
			out[pos] = e.output(sr, p)
			pos++
		}
	}

	for _, b := range in {
		push(uint32(b & 1))
	}

	if !e.TailBiting {
		for range e.K - 1 {
			push(0)
		}
	}

	return pos, nil
}

func (e *Encoder) output(sr uint32, poly int) byte {
	mask := uint32(1)<<e.K - 1
	v := byte(bits.OnesCount32(sr&mask&uint32(abs(poly))) & 1)
	if poly < 0 {
		v ^= 1
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
