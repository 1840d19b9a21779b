//go:build arm64 && !purego

// Package neon registers the sixteen-lane trellis kernel for ARM Advanced SIMD.
package neon

import (
	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/lanes"
	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/registry"
	"github.com/cwbudde/algo-fec/internal/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "neon",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  15,
		Update:    lanes.Update[lanes.V128],
	})
}
