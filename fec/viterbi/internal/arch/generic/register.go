// Package generic registers the portable one-state-at-a-time trellis kernel.
package generic

import (
	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/lanes"
	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/registry"
	"github.com/cwbudde/algo-fec/internal/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Update:    lanes.Update[lanes.Scalar],
	})
}
