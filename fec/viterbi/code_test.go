package viterbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParity(t *testing.T) {
	tests := []struct {
		in   uint32
		want uint8
	}{
		{0, 0},
		{1, 1},
		{0x3, 0},
		{0x7, 1},
		{0x6D, 1},
		{0xFFFFFFFF, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parity(tt.in), "parity(%#x)", tt.in)
	}
}

func TestBuildBranchTable(t *testing.T) {
	bt := BuildBranchTable(LTEPolynomials)

	for j := range Rate {
		assert.Equal(t, byte(0x00), bt[j][0], "state 0 poly %d", j)
	}

	// State 1 has register 0b10, so the entry is bit 1 of each generator.
	assert.Equal(t, byte(0x00), bt[0][1]) // 0x6D bit 1 = 0
	assert.Equal(t, byte(0xFF), bt[1][1]) // 0x4F bit 1 = 1
	assert.Equal(t, byte(0xFF), bt[2][1]) // 0x57 bit 1 = 1

	for j := range Rate {
		for s := range NumStates {
			v := bt[j][s]
			require.True(t, v == 0x00 || v == 0xFF, "bt[%d][%d] = %#x", j, s, v)
		}
	}
}

func TestBuildBranchTableInvertedPolynomial(t *testing.T) {
	plain := BuildBranchTable(LTEPolynomials)
	inverted := BuildBranchTable([Rate]int{0x6D, -0x4F, 0x57})

	for s := range NumStates {
		assert.Equal(t, plain[0][s], inverted[0][s])
		assert.Equal(t, ^plain[1][s], inverted[1][s])
		assert.Equal(t, plain[2][s], inverted[2][s])
	}
}

func TestNewCodeValidation(t *testing.T) {
	tests := []struct {
		name  string
		polys [Rate]int
		ok    bool
	}{
		{"lte", LTEPolynomials, true},
		{"inverted", [Rate]int{-0x6D, 0x4F, -0x57}, true},
		{"voyager style", [Rate]int{0x5B, 0x79, 0x65}, true},
		{"zero", [Rate]int{0x6D, 0, 0x57}, false},
		{"too wide", [Rate]int{0x6D, 0x4F, 0xD7}, false},
		{"missing newest tap", [Rate]int{0x6C, 0x4F, 0x57}, false},
		{"missing oldest tap", [Rate]int{0x6D, 0x0F, 0x57}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := NewCode(tt.polys)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidPolynomial)
				assert.Nil(t, code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.polys, code.Polynomials())
			assert.Equal(t, BuildBranchTable(tt.polys), code.BranchTable())
		})
	}
}
