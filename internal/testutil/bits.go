package testutil

import "math/rand"

// RandomBits generates n bits (0/1 bytes) with a fixed seed for
// reproducibility.
func RandomBits(seed int64, n int) []byte {
	out := make([]byte, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = byte(rng.Intn(2))
	}
	return out
}

// RandomSymbols generates n soft symbols uniformly over 0..255.
func RandomSymbols(seed int64, n int) []byte {
	out := make([]byte, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = byte(rng.Intn(256))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// HardSymbols maps bits to confident soft symbols: 0 to 0x00, 1 to 0xFF.
func HardSymbols(bits []byte) []byte {
	out := make([]byte, len(bits))
	for i, b := range bits {
		if b != 0 {
			out[i] = 0xFF
		}
	}
	return out
}
