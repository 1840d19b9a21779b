package lanes

import "encoding/binary"

// V128 is sixteen byte lanes, the width of an SSE2 or NEON register.
type V128 struct {
	lo, hi uint64
}

func (V128) width() int { return 16 }

func (V128) load(p []byte) V128 {
	_ = p[15]
	return V128{
		lo: binary.LittleEndian.Uint64(p[0:]),
		hi: binary.LittleEndian.Uint64(p[8:]),
	}
}

func (V128) splat(b byte) V128 {
	s := splat8(b)
	return V128{s, s}
}

func (a V128) store(p []byte) {
	_ = p[15]
	binary.LittleEndian.PutUint64(p[0:], a.lo)
	binary.LittleEndian.PutUint64(p[8:], a.hi)
}

func (a V128) xor(b V128) V128 { return V128{a.lo ^ b.lo, a.hi ^ b.hi} }

func (a V128) avg(b V128) V128 { return V128{avg8(a.lo, b.lo), avg8(a.hi, b.hi)} }

func (a V128) cost() V128 { return V128{cost8(a.lo), cost8(a.hi)} }

func (a V128) addSat(b V128) V128 { return V128{addSat8(a.lo, b.lo), addSat8(a.hi, b.hi)} }

func (a V128) subSat(b V128) V128 { return V128{subSat8(a.lo, b.lo), subSat8(a.hi, b.hi)} }

func (a V128) ge(b V128) V128 {
	return V128{mask8(ge8(a.lo, b.lo)), mask8(ge8(a.hi, b.hi))}
}

func (a V128) min(b V128) V128 { return V128{min8(a.lo, b.lo), min8(a.hi, b.hi)} }

func (a V128) interleave(b V128) (V128, V128) {
	l0, l1 := zip8(a.lo, b.lo)
	h0, h1 := zip8(a.hi, b.hi)
	return V128{l0, l1}, V128{h0, h1}
}

func (a V128) moveMask() uint64 { return movemask8(a.lo) | movemask8(a.hi)<<8 }

func (a V128) hmin() byte { return hmin8(min8(a.lo, a.hi)) }
