//go:build purego || (!amd64 && !arm64)

package viterbi

import (
	_ "github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/generic" // register generic backend
)
