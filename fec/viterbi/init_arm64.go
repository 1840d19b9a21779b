//go:build arm64 && !purego

package viterbi

import (
	_ "github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/arm64/neon" // register NEON backend
	_ "github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/generic"    // register generic backend
)
