package viterbi

import (
	"fmt"

	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/registry"
)

// Decoder holds the path metrics and survivor trace for one frame.
//
// A Decoder is not safe for concurrent use; give each goroutine its own.
type Decoder struct {
	code     *Code
	frameLen int
	kernel   registry.UpdateFn
	backend  string
	trellis  registry.Trellis
	closed   bool
}

// New builds a Code from polys and returns a decoder sized for frames of up
// to frameLen bits. The decoder is initialized with start state 0.
func New(polys [Rate]int, frameLen int, opts ...Option) (*Decoder, error) {
	code, err := NewCode(polys)
	if err != nil {
		return nil, err
	}
	return NewWithCode(code, frameLen, opts...)
}

// NewWithCode returns a decoder for code sized for frames of up to frameLen
// bits. The decoder is initialized with start state 0.
func NewWithCode(code *Code, frameLen int, opts ...Option) (*Decoder, error) {
	if code == nil {
		return nil, ErrNilCode
	}

	if frameLen <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameLength, frameLen)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	entry, err := selectKernel(o.backend)
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		code:     code,
		frameLen: frameLen,
		kernel:   entry.Update,
		backend:  entry.Name,
		trellis: registry.Trellis{
			Branch:    &code.table,
			Decisions: make([]registry.Decisions, frameLen+Tail),
			Threshold: o.threshold,
		},
	}

	if err := d.Init(0); err != nil {
		return nil, err
	}

	return d, nil
}

// Init prepares the decoder for a new frame. Every metric is set to 63 and
// the decision trace is cleared; a known startState (0..63) then gets
// metric 0. Pass Unknown when the start state is not known.
func (d *Decoder) Init(startState int) error {
	if d == nil || d.closed {
		return ErrClosed
	}

	if startState < Unknown || startState >= NumStates {
		return fmt.Errorf("%w: start state %d", ErrInvalidState, startState)
	}

	t := &d.trellis
	for i := range t.Metrics[0] {
		t.Metrics[0][i] = registry.InitialMetric
	}
	t.Metrics[1] = [NumStates]uint8{}
	clear(t.Decisions)
	t.Cur = 0
	t.DP = 0

	if startState != Unknown {
		t.Metrics[0][startState] = 0
	}

	return nil
}

// Update consumes nbits trellis steps, three soft symbols each, appending
// one decision word per step to the trace. It may be called several times
// per frame. It returns the state with the smallest metric afterwards, the
// highest-numbered one on ties.
func (d *Decoder) Update(symbols []byte, nbits int) (int, error) {
	if d == nil || d.closed {
		return 0, ErrClosed
	}

	if nbits < 0 || len(symbols) < Rate*nbits {
		return 0, fmt.Errorf("%w: %d symbols for %d steps", ErrInvalidLength, len(symbols), nbits)
	}

	t := &d.trellis
	if t.DP+nbits > len(t.Decisions) {
		return 0, fmt.Errorf("%w: %d + %d steps exceeds %d", ErrTraceFull, t.DP, nbits, len(t.Decisions))
	}

	d.kernel(t, symbols, nbits)

	return d.bestState(), nil
}

// Chainback writes nbits decoded bits (one 0/1 byte each) to out, tracing
// the survivors back from endState. Only the low 6 bits of endState are
// used. The trace must hold at least nbits+Tail decisions.
func (d *Decoder) Chainback(out []byte, nbits, endState int) error {
	if d == nil || d.closed {
		return ErrClosed
	}

	if nbits < 0 || len(out) < nbits {
		return fmt.Errorf("%w: %d output bytes for %d bits", ErrInvalidLength, len(out), nbits)
	}

	dec := d.trellis.Decisions
	if nbits+Tail > d.trellis.DP {
		return fmt.Errorf("%w: %d bits need %d decisions, have %d", ErrShortTrace, nbits, nbits+Tail, d.trellis.DP)
	}

	state := endState & (NumStates - 1)
	for n := nbits - 1; n >= 0; n-- {
		k := dec[n+Tail].Bit(state)
		out[n] = k
		state = state>>1 | int(k)<<(K-2)
	}

	return nil
}

// Close releases the decision trace. Using the decoder afterwards returns
// ErrClosed. Close on a nil or closed decoder is a no-op.
func (d *Decoder) Close() error {
	if d == nil || d.closed {
		return nil
	}
	d.trellis.Decisions = nil
	d.trellis.Branch = nil
	d.trellis.DP = 0
	d.trellis.Cur = 0
	d.closed = true
	return nil
}

// Backend returns the name of the kernel running the recurrence.
func (d *Decoder) Backend() string { return d.backend }

// FrameLen returns the frame length the decoder was sized for.
func (d *Decoder) FrameLen() int { return d.frameLen }

// Code returns the code the decoder was built with.
func (d *Decoder) Code() *Code { return d.code }

// Steps returns the number of decisions written since Init.
func (d *Decoder) Steps() int { return d.trellis.DP }

// Metrics returns a copy of the current path metrics.
func (d *Decoder) Metrics() [NumStates]uint8 { return *d.trellis.Old() }

// DecisionTrace returns a copy of the decisions written since Init. Bit s
// of word n is the decision of state s at step n.
func (d *Decoder) DecisionTrace() []uint64 {
	out := make([]uint64, d.trellis.DP)
	for i, w := range d.trellis.Decisions[:d.trellis.DP] {
		out[i] = uint64(w)
	}
	return out
}

func (d *Decoder) bestState() int {
	metrics := d.trellis.Old()
	best := 0
	for s := 1; s < NumStates; s++ {
		if metrics[s] <= metrics[best] {
			best = s
		}
	}
	return best
}
