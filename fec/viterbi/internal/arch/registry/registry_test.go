package registry

import (
	"testing"

	"github.com/cwbudde/algo-fec/internal/cpu"
)

func TestRegistryLookupPrefersHigherPriority(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(OpEntry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(OpEntry{Name: "sse2", SIMDLevel: cpu.SIMDSSE2, Priority: 10})
	reg.Register(OpEntry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	entry := reg.Lookup(cpu.Features{HasSSE2: true, HasAVX2: true})
	if entry == nil || entry.Name != "avx2" {
		t.Fatalf("expected avx2, got %#v", entry)
	}

	entry = reg.Lookup(cpu.Features{HasSSE2: true})
	if entry == nil || entry.Name != "sse2" {
		t.Fatalf("expected sse2, got %#v", entry)
	}

	entry = reg.Lookup(cpu.Features{})
	if entry == nil || entry.Name != "generic" {
		t.Fatalf("expected generic, got %#v", entry)
	}
}

func TestRegistryLookupForceGeneric(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(OpEntry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(OpEntry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	entry := reg.Lookup(cpu.Features{HasAVX2: true, ForceGeneric: true})
	if entry == nil || entry.Name != "generic" {
		t.Fatalf("expected generic with ForceGeneric, got %#v", entry)
	}
}

func TestRegistryByNameIgnoresCPU(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(OpEntry{Name: "generic", SIMDLevel: cpu.SIMDNone})
	reg.Register(OpEntry{Name: "neon", SIMDLevel: cpu.SIMDNEON, Priority: 15})

	if entry := reg.ByName("neon"); entry == nil || entry.Name != "neon" {
		t.Fatalf("ByName(neon) = %#v", entry)
	}
	if entry := reg.ByName("avx512"); entry != nil {
		t.Fatalf("ByName(avx512) = %#v, want nil", entry)
	}
}

func TestRegistryEmptyLookup(t *testing.T) {
	reg := &OpRegistry{}
	if entry := reg.Lookup(cpu.Features{}); entry != nil {
		t.Fatalf("expected nil from empty registry, got %#v", entry)
	}

	reg.Register(OpEntry{Name: "generic"})
	reg.Reset()
	if n := len(reg.ListEntries()); n != 0 {
		t.Fatalf("ListEntries after Reset has %d entries", n)
	}
}

func TestDecisionsBitLayout(t *testing.T) {
	var d Decisions
	for _, s := range []int{0, 1, 31, 32, 63} {
		d = d.Set(s, 1)
	}

	for s := range NumStates {
		want := uint8(0)
		switch s {
		case 0, 1, 31, 32, 63:
			want = 1
		}
		if got := d.Bit(s); got != want {
			t.Fatalf("Bit(%d) = %d, want %d", s, got, want)
		}
	}

	if d != Decisions(1|1<<1|1<<31|1<<32|1<<63) {
		t.Fatalf("unexpected packing %#x", uint64(d))
	}

	d = d.Set(63, 0)
	if d.Bit(63) != 0 {
		t.Fatal("Set(63, 0) did not clear the bit")
	}
}

func TestTrellisSwap(t *testing.T) {
	var tr Trellis
	tr.New()[5] = 9
	tr.Swap()
	if tr.Old()[5] != 9 {
		t.Fatal("Swap did not promote the new buffer")
	}
	if tr.New() == tr.Old() {
		t.Fatal("old and new alias the same buffer")
	}
}
