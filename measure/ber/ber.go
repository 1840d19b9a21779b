package ber

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-fec/fec/convcoder"
	"github.com/cwbudde/algo-fec/fec/softbits"
	"github.com/cwbudde/algo-fec/fec/viterbi"
)

// Errors returned by Run.
var (
	ErrInvalidFrameLength = errors.New("ber: frame length too short")
	ErrInvalidFrames      = errors.New("ber: frame count must be positive")
	ErrNoPoints           = errors.New("ber: no Eb/N0 points")
)

// codeRate is the nominal rate used to scale noise to Eb/N0.
const codeRate = 1.0 / viterbi.Rate

// Config holds BER measurement parameters.
type Config struct {
	Polys      [viterbi.Rate]int
	FrameLen   int       // information bits per frame
	Frames     int       // frames per Eb/N0 point
	EbN0dB     []float64 // points to measure
	TailBiting bool
	Seed       uint64
	Backend    string // decoder kernel; empty selects the default
}

// Validate checks that the Config parameters are valid.
func (c *Config) Validate() error {
	if c.FrameLen <= viterbi.K+1 {
		return fmt.Errorf("%w: %d bits, need more than %d", ErrInvalidFrameLength, c.FrameLen, viterbi.K+1)
	}

	if c.Frames <= 0 {
		return ErrInvalidFrames
	}

	if len(c.EbN0dB) == 0 {
		return ErrNoPoints
	}

	return nil
}

// Point holds the error counts measured at one Eb/N0.
type Point struct {
	EbN0dB      float64
	Frames      int
	FrameErrors int
	Bits        int
	BitErrors   int
}

// BER returns the bit error rate.
func (p Point) BER() float64 {
	if p.Bits == 0 {
		return 0
	}
	return float64(p.BitErrors) / float64(p.Bits)
}

// FER returns the frame error rate.
func (p Point) FER() float64 {
	if p.Frames == 0 {
		return 0
	}
	return float64(p.FrameErrors) / float64(p.Frames)
}

// NoiseSigma returns the noise standard deviation for unit-energy BPSK
// symbols at the given Eb/N0 in dB.
func NoiseSigma(ebn0dB float64) float64 {
	ebn0 := math.Pow(10, ebn0dB/10)
	return math.Sqrt(1 / (2 * codeRate * ebn0))
}

// UncodedBER returns the theoretical BER of uncoded BPSK at the given Eb/N0.
func UncodedBER(ebn0dB float64) float64 {
	ebn0 := math.Pow(10, ebn0dB/10)
	return 0.5 * math.Erfc(math.Sqrt(ebn0))
}

// Run measures every point in cfg.EbN0dB in order. On cancellation it
// returns the points completed so far together with the context error.
func Run(ctx context.Context, cfg Config) ([]Point, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []viterbi.Option
	if cfg.Backend != "" {
		opts = append(opts, viterbi.WithBackend(cfg.Backend))
	}

	dec, err := viterbi.NewFrameDecoder(viterbi.FrameConfig{
		Polys:       cfg.Polys,
		MaxFrameLen: cfg.FrameLen,
		TailBiting:  cfg.TailBiting,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("ber: %w", err)
	}
	defer dec.Close()

	enc, err := convcoder.New(viterbi.K, cfg.Polys[:], cfg.TailBiting)
	if err != nil {
		return nil, fmt.Errorf("ber: %w", err)
	}

	ch := newChannel(cfg, enc)
	points := make([]Point, 0, len(cfg.EbN0dB))

	for _, ebn0 := range cfg.EbN0dB {
		p := Point{EbN0dB: ebn0}
		sigma := NoiseSigma(ebn0)

		for range cfg.Frames {
			if err := ctx.Err(); err != nil {
				return points, err
			}

			if err := ch.frame(sigma); err != nil {
				return points, fmt.Errorf("ber: %w", err)
			}

			if err := dec.DecodeFloat(ch.samples, ch.decoded, cfg.FrameLen); err != nil {
				return points, fmt.Errorf("ber: %w", err)
			}

			errs := countErrors(ch.bits, ch.decoded)
			p.Frames++
			p.Bits += cfg.FrameLen
			p.BitErrors += errs
			if errs > 0 {
				p.FrameErrors++
			}
		}

		points = append(points, p)
	}

	return points, nil
}

// channel produces noisy BPSK frames into reused buffers.
type channel struct {
	rng     *rand.Rand
	enc     *convcoder.Encoder
	bits    []byte
	coded   []byte
	samples []float64
	decoded []byte
}

func newChannel(cfg Config, enc *convcoder.Encoder) *channel {
	n := enc.EncodedLen(cfg.FrameLen)
	return &channel{
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9E3779B97F4A7C15)),
		enc:     enc,
		bits:    make([]byte, cfg.FrameLen),
		coded:   make([]byte, n),
		samples: make([]float64, n),
		decoded: make([]byte, cfg.FrameLen),
	}
}

func (c *channel) frame(sigma float64) error {
	for i := range c.bits {
		c.bits[i] = byte(c.rng.IntN(2))
	}

	if _, err := c.enc.Encode(c.bits, c.coded); err != nil {
		return err
	}

	softbits.BPSK(c.samples, c.coded, 1)
	for i := range c.samples {
		c.samples[i] += sigma * c.rng.NormFloat64()
	}

	return nil
}

func countErrors(want, got []byte) int {
	n := 0
	for i := range want {
		if want[i] != got[i] {
			n++
		}
	}
	return n
}
