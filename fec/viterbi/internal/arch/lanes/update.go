package lanes

import "github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/registry"

// vector is the lane abstraction the trellis update is written against.
// Every method works independently on each byte lane except moveMask and
// hmin, which reduce across lanes.
type vector[V any] interface {
	// width is the number of byte lanes.
	width() int
	load(p []byte) V
	splat(b byte) V
	store(p []byte)

	xor(o V) V
	// avg is the rounding-up average (a+b+1)>>1.
	avg(o V) V
	// cost maps an averaged symbol distance to 0..31.
	cost() V
	addSat(o V) V
	subSat(o V) V
	// ge is 0xFF where the receiver is >= o, else 0.
	ge(o V) V
	min(o V) V

	// interleave zips receiver and o lane by lane: r0 o0 r1 o1 ...
	// first holds the lower half of the result, second the upper half.
	interleave(o V) (first, second V)
	// moveMask gathers the top bit of every lane, lane 0 in bit 0.
	moveMask() uint64
	hmin() byte
}

// Update advances t by nbits steps using lane type V.
func Update[V vector[V]](t *registry.Trellis, symbols []byte, nbits int) {
	var z V
	w := z.width()
	br := t.Branch
	maxCost := z.splat(registry.MaxCost)

	for n := range nbits {
		sym0 := z.splat(symbols[registry.Rate*n])
		sym1 := z.splat(symbols[registry.Rate*n+1])
		sym2 := z.splat(symbols[registry.Rate*n+2])

		old, next := t.Old(), t.New()

		var dec uint64
		for i := 0; i < registry.NumButterflies; i += w {
			cost := z.load(br[0][i:]).xor(sym0).
				avg(z.load(br[1][i:]).xor(sym1)).
				avg(z.load(br[2][i:]).xor(sym2)).
				cost()
			comp := cost.xor(maxCost)

			lower := z.load(old[i:])
			upper := z.load(old[i+registry.NumButterflies:])

			m0 := lower.addSat(cost)
			m1 := upper.addSat(comp)
			m2 := lower.addSat(comp)
			m3 := upper.addSat(cost)

			first, second := m0.min(m1).interleave(m2.min(m3))
			first.store(next[2*i:])
			second.store(next[2*i+w:])

			d0, d1 := m0.ge(m1).interleave(m2.ge(m3))
			dec |= (d0.moveMask() | d1.moveMask()<<uint(w)) << uint(2*i)
		}

		t.Decisions[t.DP] = registry.Decisions(dec)
		t.DP++

		if next[0] > t.Threshold {
			renormalize[V](next)
		}

		t.Swap()
	}
}

// renormalize subtracts the smallest metric from every state.
func renormalize[V vector[V]](m *[registry.NumStates]byte) {
	var z V
	w := z.width()

	low := z.load(m[0:])
	for i := w; i < registry.NumStates; i += w {
		low = low.min(z.load(m[i:]))
	}

	adj := z.splat(low.hmin())
	for i := 0; i < registry.NumStates; i += w {
		z.load(m[i:]).subSat(adj).store(m[i:])
	}
}
