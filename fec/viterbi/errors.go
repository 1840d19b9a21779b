package viterbi

import "errors"

var (
	// ErrInvalidPolynomial indicates a generator polynomial that is zero,
	// wider than 7 bits or without taps on both ends of the register.
	ErrInvalidPolynomial = errors.New("viterbi: invalid generator polynomial")

	// ErrNilCode indicates a nil Code passed to NewWithCode.
	ErrNilCode = errors.New("viterbi: nil code")

	// ErrInvalidFrameLength indicates a frame length the decoder cannot handle.
	ErrInvalidFrameLength = errors.New("viterbi: invalid frame length")

	// ErrFrameTooLong indicates a frame longer than the decoder was sized for.
	ErrFrameTooLong = errors.New("viterbi: frame longer than configured maximum")

	// ErrUnknownBackend indicates a kernel name that is not registered.
	ErrUnknownBackend = errors.New("viterbi: unknown backend")

	// ErrInvalidState indicates a trellis state outside -1..63.
	ErrInvalidState = errors.New("viterbi: invalid state")

	// ErrInvalidLength indicates an input or output slice that is too short.
	ErrInvalidLength = errors.New("viterbi: invalid length")

	// ErrTraceFull indicates more update steps than the trace has room for.
	ErrTraceFull = errors.New("viterbi: decision trace full")

	// ErrShortTrace indicates a chainback over decisions never written.
	ErrShortTrace = errors.New("viterbi: not enough decisions for chainback")

	// ErrInvalidGain indicates a non-positive quantization gain.
	ErrInvalidGain = errors.New("viterbi: gain must be positive")

	// ErrClosed indicates use of a closed or nil decoder.
	ErrClosed = errors.New("viterbi: decoder closed")
)
