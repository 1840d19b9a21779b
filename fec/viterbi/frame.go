package viterbi

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fec/fec/softbits"
)

const (
	// TailBitingIterations is how many copies of a tail-biting frame run
	// through the trellis. The middle copy is returned.
	TailBitingIterations = 3

	// DefaultGain is the default full-scale soft symbol swing for float and
	// int16 input.
	DefaultGain = 100

	// gainFloor keeps all-zero float input from dividing by zero.
	gainFloor = 1e-9
)

// FrameConfig configures a FrameDecoder.
type FrameConfig struct {
	Polys       [Rate]int
	MaxFrameLen int
	TailBiting  bool
	Gain        float64
}

// FrameDecoder decodes whole frames, zero-tail or tail-biting, from byte,
// float64 or int16 soft symbols. It owns its buffers and is not safe for
// concurrent use.
type FrameDecoder struct {
	dec        *Decoder
	maxLen     int
	tailBiting bool
	gain       float64

	quant     softbits.Quantizer
	symbols   []byte
	tbSymbols []byte
	tbBits    []byte
}

// NewFrameDecoder returns a decoder for frames of up to cfg.MaxFrameLen
// bits. A zero Gain means DefaultGain.
func NewFrameDecoder(cfg FrameConfig, opts ...Option) (*FrameDecoder, error) {
	if cfg.MaxFrameLen <= 0 {
		return nil, fmt.Errorf("%w: max frame length %d", ErrInvalidFrameLength, cfg.MaxFrameLen)
	}

	gain := cfg.Gain
	if gain == 0 {
		gain = DefaultGain
	}
	if !(gain > 0) || math.IsInf(gain, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGain, cfg.Gain)
	}

	traceLen := cfg.MaxFrameLen
	if cfg.TailBiting {
		traceLen = TailBitingIterations * cfg.MaxFrameLen
	}

	dec, err := New(cfg.Polys, traceLen, opts...)
	if err != nil {
		return nil, err
	}

	f := &FrameDecoder{
		dec:        dec,
		maxLen:     cfg.MaxFrameLen,
		tailBiting: cfg.TailBiting,
		gain:       gain,
		symbols:    make([]byte, Rate*(cfg.MaxFrameLen+Tail)),
	}

	if cfg.TailBiting {
		f.tbSymbols = make([]byte, TailBitingIterations*Rate*cfg.MaxFrameLen)
		f.tbBits = make([]byte, TailBitingIterations*cfg.MaxFrameLen)
	}

	return f, nil
}

// SymbolLen returns the number of soft symbols a frame of frameLen bits
// occupies: 3*frameLen when tail-biting, 3*(frameLen+6) otherwise.
func (f *FrameDecoder) SymbolLen(frameLen int) int {
	if f.tailBiting {
		return Rate * frameLen
	}
	return Rate * (frameLen + Tail)
}

// SetGain changes the full-scale swing used by DecodeFloat and DecodeInt16.
func (f *FrameDecoder) SetGain(gain float64) error {
	if !(gain > 0) || math.IsInf(gain, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidGain, gain)
	}
	f.gain = gain
	return nil
}

// Gain returns the current quantization gain.
func (f *FrameDecoder) Gain() float64 { return f.gain }

// TailBiting reports whether frames are tail-biting.
func (f *FrameDecoder) TailBiting() bool { return f.tailBiting }

// MaxFrameLen returns the longest frame the decoder accepts.
func (f *FrameDecoder) MaxFrameLen() int { return f.maxLen }

// Backend returns the name of the kernel running the recurrence.
func (f *FrameDecoder) Backend() string { return f.dec.Backend() }

// Decode decodes frameLen bits from byte soft symbols into out.
func (f *FrameDecoder) Decode(symbols, out []byte, frameLen int) error {
	if err := f.check(frameLen, len(symbols), len(out)); err != nil {
		return err
	}

	if f.tailBiting {
		return f.decodeTailBiting(symbols, out, frameLen)
	}

	if err := f.dec.Init(0); err != nil {
		return err
	}
	if _, err := f.dec.Update(symbols, frameLen+Tail); err != nil {
		return err
	}
	return f.dec.Chainback(out, frameLen, 0)
}

func (f *FrameDecoder) decodeTailBiting(symbols, out []byte, frameLen int) error {
	n := Rate * frameLen
	rep := f.tbSymbols[:TailBitingIterations*n]
	for i := range TailBitingIterations {
		copy(rep[i*n:], symbols[:n])
	}

	if err := f.dec.Init(Unknown); err != nil {
		return err
	}

	steps := TailBitingIterations * frameLen
	best, err := f.dec.Update(rep, steps)
	if err != nil {
		return err
	}

	if err := f.dec.Chainback(f.tbBits, steps-Tail, best); err != nil {
		return err
	}

	mid := TailBitingIterations / 2 * frameLen
	copy(out[:frameLen], f.tbBits[mid:mid+frameLen])
	return nil
}

// DecodeFloat quantizes real-valued symbols, positive meaning 1, and
// decodes them. The largest magnitude in the frame maps to the full gain.
func (f *FrameDecoder) DecodeFloat(symbols []float64, out []byte, frameLen int) error {
	if err := f.check(frameLen, len(symbols), len(out)); err != nil {
		return err
	}

	n := f.SymbolLen(frameLen)
	gain := softbits.Gain(f.gain, softbits.MaxAbs(symbols[:n]), gainFloor)
	f.quant.Float(f.symbols[:n], symbols[:n], gain, softbits.FloatOffset, softbits.Clip)

	return f.Decode(f.symbols[:n], out, frameLen)
}

// DecodeInt16 quantizes fixed-point symbols, positive meaning 1, and
// decodes them. The largest magnitude in the frame maps to the full gain.
func (f *FrameDecoder) DecodeInt16(symbols []int16, out []byte, frameLen int) error {
	if err := f.check(frameLen, len(symbols), len(out)); err != nil {
		return err
	}

	n := f.SymbolLen(frameLen)
	gain := softbits.Gain(f.gain, float64(softbits.MaxAbsInt16(symbols[:n])), 1)
	f.quant.Int16(f.symbols[:n], symbols[:n], gain, softbits.Int16Offset, softbits.Clip)

	return f.Decode(f.symbols[:n], out, frameLen)
}

// Close releases the decoder. Later calls return ErrClosed.
func (f *FrameDecoder) Close() error {
	if f == nil || f.dec == nil {
		return nil
	}
	err := f.dec.Close()
	f.symbols, f.tbSymbols, f.tbBits = nil, nil, nil
	return err
}

func (f *FrameDecoder) check(frameLen, symbols, out int) error {
	if f == nil || f.dec == nil || f.dec.closed {
		return ErrClosed
	}

	if frameLen <= 0 || (f.tailBiting && frameLen <= Tail) {
		return fmt.Errorf("%w: %d", ErrInvalidFrameLength, frameLen)
	}

	if frameLen > f.maxLen {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLong, frameLen, f.maxLen)
	}

	if need := f.SymbolLen(frameLen); symbols < need {
		return fmt.Errorf("%w: %d symbols, need %d", ErrInvalidLength, symbols, need)
	}

	if out < frameLen {
		return fmt.Errorf("%w: %d output bytes for %d bits", ErrInvalidLength, out, frameLen)
	}

	return nil
}
