package registry

const (
	// NumStates is the number of trellis states (6 bit register).
	NumStates = 64

	// NumButterflies is the number of butterflies per step.
	NumButterflies = NumStates / 2

	// Rate is the number of coded symbols per decoded bit.
	Rate = 3

	// Tail is the number of decisions the chainback looks past the last
	// output bit.
	Tail = 6

	// DefaultThreshold triggers renormalization once state 0 exceeds it.
	DefaultThreshold = 100

	// InitialMetric is the metric of every state the decoder knows nothing about.
	InitialMetric = 63

	// MaxCost is the largest branch cost of one step.
	MaxCost = 31
)

// BranchTable holds, per generator polynomial and state, the symbol the
// encoder emits for the register value 2*state: 0x00 or 0xFF.
type BranchTable [Rate][NumStates]byte

// Decisions is the survivor bitset of one step. Bit s is set when the
// destination state s was reached from its upper predecessor s>>1 | 32.
type Decisions uint64

// Bit returns the survivor bit of state.
func (d Decisions) Bit(state int) uint8 {
	return uint8(d>>(uint(state)&(NumStates-1))) & 1
}

// Set returns d with the survivor bit of state set to bit.
func (d Decisions) Set(state int, bit uint8) Decisions {
	s := uint(state) & (NumStates - 1)
	return d&^(1<<s) | Decisions(bit&1)<<s
}

// Trellis is the mutable state of one decoder instance.
//
// Metrics[Cur] holds the metrics after the last step and
// Metrics[Cur^1] is scratch for the next one.
type Trellis struct {
	Branch    *BranchTable
	Metrics   [2][NumStates]byte
	Cur       int
	Decisions []Decisions
	DP        int
	Threshold uint8
}

// Old returns the metrics of the last completed step.
func (t *Trellis) Old() *[NumStates]byte { return &t.Metrics[t.Cur] }

// New returns the buffer the next step writes.
func (t *Trellis) New() *[NumStates]byte { return &t.Metrics[t.Cur^1] }

// Swap makes the buffer just written the current one.
func (t *Trellis) Swap() { t.Cur ^= 1 }
