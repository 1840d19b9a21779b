// Package ber measures bit and frame error rates of the Viterbi decoder
// over a simulated AWGN channel.
//
// Each frame is a run of random bits, convolutionally encoded, mapped to
// BPSK, disturbed by white Gaussian noise scaled to the requested Eb/N0 and
// decoded from float samples:
//
//	points, err := ber.Run(ctx, ber.Config{
//	    Polys:    viterbi.LTEPolynomials,
//	    FrameLen: 40,
//	    Frames:   1000,
//	    EbN0dB:   []float64{0, 1, 2, 3, 4},
//	})
//
// The noise source is seeded, so a Config always yields the same points.
package ber
