//go:build amd64 && !purego

// Package avx2 registers the thirty-two-lane trellis kernel: one pass
// covers every butterfly of a step.
package avx2

import (
	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/lanes"
	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/registry"
	"github.com/cwbudde/algo-fec/internal/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "avx2",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
		Update:    lanes.Update[lanes.V256],
	})
}
