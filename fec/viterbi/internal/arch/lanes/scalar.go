package lanes

import "github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/registry"

// Scalar is a single byte lane: the portable kernel.
type Scalar uint8

func (Scalar) width() int { return 1 }

func (Scalar) load(p []byte) Scalar { return Scalar(p[0]) }

func (Scalar) splat(b byte) Scalar { return Scalar(b) }

func (a Scalar) store(p []byte) { p[0] = byte(a) }

func (a Scalar) xor(b Scalar) Scalar { return a ^ b }

func (a Scalar) avg(b Scalar) Scalar {
	return Scalar((uint16(a) + uint16(b) + 1) >> 1)
}

func (a Scalar) cost() Scalar { return (a >> 3) & registry.MaxCost }

func (a Scalar) addSat(b Scalar) Scalar {
	s := uint16(a) + uint16(b)
	if s > 0xFF {
		return 0xFF
	}
	return Scalar(s)
}

func (a Scalar) subSat(b Scalar) Scalar {
	if b > a {
		return 0
	}
	return a - b
}

func (a Scalar) ge(b Scalar) Scalar {
	if a >= b {
		return 0xFF
	}
	return 0
}

func (a Scalar) min(b Scalar) Scalar {
	if b < a {
		return b
	}
	return a
}

func (a Scalar) interleave(b Scalar) (Scalar, Scalar) { return a, b }

func (a Scalar) moveMask() uint64 { return uint64(a >> 7) }

func (a Scalar) hmin() byte { return byte(a) }
