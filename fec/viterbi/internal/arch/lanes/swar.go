package lanes

// Byte-wise operations on eight lanes packed little-endian into a uint64.
// None of them lets a carry or borrow cross a byte boundary.

const (
	ones  = 0x0101010101010101
	highs = 0x8080808080808080

	// movemaskMagic moves bit 7 of byte k to bit 56+k.
	movemaskMagic = 0x0002040810204081
)

func splat8(b byte) uint64 { return uint64(b) * ones }

func avg8(a, b uint64) uint64 {
	return (a | b) - (((a ^ b) &^ ones) >> 1)
}

func cost8(x uint64) uint64 { return (x >> 3) & (0x1F * ones) }

// mask8 widens the top bit of each byte to the whole byte.
func mask8(h uint64) uint64 { return ((h & highs) >> 7) * 0xFF }

// ge8 sets the top bit of each byte where a >= b.
func ge8(a, b uint64) uint64 {
	d := (a | highs) - (b &^ highs)
	return ((a &^ b) | (^(a ^ b) & d)) & highs
}

func addSat8(a, b uint64) uint64 {
	s := (a &^ highs) + (b &^ highs)
	r := s ^ ((a ^ b) & highs)
	carry := ((a & b) | ((a | b) &^ r)) & highs
	return r | mask8(carry)
}

func subSat8(a, b uint64) uint64 {
	r := ((a | highs) - (b &^ highs)) ^ ((a ^ ^b) & highs)
	return r & mask8(ge8(a, b))
}

func min8(a, b uint64) uint64 {
	m := mask8(ge8(a, b))
	return (b & m) | (a &^ m)
}

func movemask8(x uint64) uint64 {
	return ((x & highs) * movemaskMagic) >> 56
}

func hmin8(x uint64) byte {
	x = min8(x, x>>32)
	x = min8(x, x>>16)
	x = min8(x, x>>8)
	return byte(x)
}

// spread32 moves byte k of the low word to byte 2k.
func spread32(x uint64) uint64 {
	x &= 0xFFFFFFFF
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	return x
}

// zip8 interleaves the bytes of a and b: a0 b0 a1 b1 ... a7 b7.
func zip8(a, b uint64) (lo, hi uint64) {
	lo = spread32(a) | spread32(b)<<8
	hi = spread32(a>>32) | spread32(b>>32)<<8
	return lo, hi
}
