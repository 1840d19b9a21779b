package viterbi

import (
	"fmt"
	"math/bits"

	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/registry"
)

const (
	// K is the constraint length.
	K = 7

	// Rate is the number of coded symbols per input bit.
	Rate = registry.Rate

	// NumStates is the number of trellis states, 2^(K-1).
	NumStates = registry.NumStates

	// Tail is how far past an output bit the chainback reads.
	Tail = registry.Tail

	// Unknown marks an unknown start state for Init.
	Unknown = -1

	// DefaultRenormThreshold is the state 0 metric above which all metrics
	// are renormalized.
	DefaultRenormThreshold = registry.DefaultThreshold
)

// LTEPolynomials are the generators of the LTE tail-biting convolutional
// code (36.212 5.1.3.1).
var LTEPolynomials = [Rate]int{0x6D, 0x4F, 0x57}

// BranchTable maps polynomial and state to the expected symbol, 0x00 or 0xFF.
type BranchTable = registry.BranchTable

// Code is an immutable decoder configuration. It may be shared by any
// number of decoders and goroutines.
type Code struct {
	polys [Rate]int
	table BranchTable
}

// NewCode validates polys and builds their branch table.
//
// A negative polynomial inverts that output. Every |poly| must fit in K
// bits and tap both the newest and the oldest register bit.
func NewCode(polys [Rate]int) (*Code, error) {
	const ends = 1 | 1<<(K-1)

	for j, p := range polys {
		if p < 0 {
			p = -p
		}
		if p == 0 || p >= 1<<K || p&ends != ends {
			return nil, fmt.Errorf("%w: poly[%d] = %#x", ErrInvalidPolynomial, j, polys[j])
		}
	}

	return &Code{polys: polys, table: BuildBranchTable(polys)}, nil
}

// Polynomials returns the generator polynomials.
func (c *Code) Polynomials() [Rate]int { return c.polys }

// BranchTable returns a copy of the branch table.
func (c *Code) BranchTable() BranchTable { return c.table }

// BuildBranchTable computes, for each polynomial j and state s, the symbol
// an encoder emits when its register holds 2*s:
//
//	(poly[j] < 0) XOR parity(2*s & |poly[j]|) ? 0xFF : 0x00
func BuildBranchTable(polys [Rate]int) BranchTable {
	var bt BranchTable
	for j, p := range polys {
		inverted := p < 0
		if inverted {
			p = -p
		}
		for s := range NumStates {
			if (parity(uint32(2*s&p)) == 1) != inverted {
				bt[j][s] = 0xFF
			}
		}
	}
	return bt
}

func parity(x uint32) uint8 {
	return uint8(bits.OnesCount32(x) & 1)
}
