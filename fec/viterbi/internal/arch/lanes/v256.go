package lanes

import "encoding/binary"

// V256 is thirty-two byte lanes, the width of an AVX2 register.
type V256 [4]uint64

func (V256) width() int { return 32 }

func (V256) load(p []byte) V256 {
	_ = p[31]
	return V256{
		binary.LittleEndian.Uint64(p[0:]),
		binary.LittleEndian.Uint64(p[8:]),
		binary.LittleEndian.Uint64(p[16:]),
		binary.LittleEndian.Uint64(p[24:]),
	}
}

func (V256) splat(b byte) V256 {
	s := splat8(b)
	return V256{s, s, s, s}
}

func (a V256) store(p []byte) {
	_ = p[31]
	binary.LittleEndian.PutUint64(p[0:], a[0])
	binary.LittleEndian.PutUint64(p[8:], a[1])
	binary.LittleEndian.PutUint64(p[16:], a[2])
	binary.LittleEndian.PutUint64(p[24:], a[3])
}

func (a V256) xor(b V256) V256 {
	return V256{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

func (a V256) avg(b V256) V256 {
	return V256{avg8(a[0], b[0]), avg8(a[1], b[1]), avg8(a[2], b[2]), avg8(a[3], b[3])}
}

func (a V256) cost() V256 {
	return V256{cost8(a[0]), cost8(a[1]), cost8(a[2]), cost8(a[3])}
}

func (a V256) addSat(b V256) V256 {
	return V256{addSat8(a[0], b[0]), addSat8(a[1], b[1]), addSat8(a[2], b[2]), addSat8(a[3], b[3])}
}

func (a V256) subSat(b V256) V256 {
	return V256{subSat8(a[0], b[0]), subSat8(a[1], b[1]), subSat8(a[2], b[2]), subSat8(a[3], b[3])}
}

func (a V256) ge(b V256) V256 {
	return V256{
		mask8(ge8(a[0], b[0])),
		mask8(ge8(a[1], b[1])),
		mask8(ge8(a[2], b[2])),
		mask8(ge8(a[3], b[3])),
	}
}

func (a V256) min(b V256) V256 {
	return V256{min8(a[0], b[0]), min8(a[1], b[1]), min8(a[2], b[2]), min8(a[3], b[3])}
}

func (a V256) interleave(b V256) (V256, V256) {
	w0, w1 := zip8(a[0], b[0])
	w2, w3 := zip8(a[1], b[1])
	w4, w5 := zip8(a[2], b[2])
	w6, w7 := zip8(a[3], b[3])
	return V256{w0, w1, w2, w3}, V256{w4, w5, w6, w7}
}

func (a V256) moveMask() uint64 {
	return movemask8(a[0]) | movemask8(a[1])<<8 | movemask8(a[2])<<16 | movemask8(a[3])<<24
}

func (a V256) hmin() byte {
	return hmin8(min8(min8(a[0], a[1]), min8(a[2], a[3])))
}
