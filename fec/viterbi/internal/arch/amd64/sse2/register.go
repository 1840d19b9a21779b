//go:build amd64 && !purego

// Package sse2 registers the sixteen-lane trellis kernel for SSE2 CPUs.
package sse2

import (
	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/lanes"
	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/registry"
	"github.com/cwbudde/algo-fec/internal/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "sse2",
		SIMDLevel: cpu.SIMDSSE2,
		Priority:  10,
		Update:    lanes.Update[lanes.V128],
	})
}
