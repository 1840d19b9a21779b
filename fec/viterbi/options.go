package viterbi

// Option configures a Decoder.
type Option func(*options)

type options struct {
	backend   string
	threshold uint8
}

func defaultOptions() options {
	return options{threshold: DefaultRenormThreshold}
}

// WithBackend selects a registered kernel by name ("generic", "sse2",
// "avx2", "neon") instead of the best one for this CPU. The pure Go kernels
// run on any architecture, but only those built for it are registered.
func WithBackend(name string) Option {
	return func(o *options) { o.backend = name }
}

// WithRenormThreshold sets the state 0 metric above which metrics are
// renormalized. Lowering it renormalizes more often without changing the
// decoded bits.
func WithRenormThreshold(t uint8) Option {
	return func(o *options) { o.threshold = t }
}
