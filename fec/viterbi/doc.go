// Package viterbi decodes the K=7, rate 1/3 convolutional code used by LTE
// control channels.
//
// A [Code] holds the generator polynomials and the branch table derived
// from them. A [Decoder] owns the path metrics and the survivor trace of one
// frame: [Decoder.Init] resets it, [Decoder.Update] runs the
// add-compare-select recurrence over received soft symbols (possibly in
// several blocks) and [Decoder.Chainback] walks the trace back to recover
// the input bits.
//
// Soft symbols are bytes: 0 is a confident 0 bit, 255 a confident 1 bit.
// Path metrics are 8 bit and renormalized whenever state 0 climbs past the
// threshold, so frames of any length can be decoded.
//
// The recurrence runs on one of several kernels (generic, sse2, avx2, neon)
// that differ only in how many states they process per operation. They
// produce identical metrics and decisions; the widest one the CPU supports
// is chosen once per process unless [WithBackend] names another.
//
// [FrameDecoder] wraps a Decoder for whole frames: zero-tail or
// tail-biting, with byte, float64 or int16 soft input.
package viterbi
