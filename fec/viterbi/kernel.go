package viterbi

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-fec/fec/viterbi/internal/arch/registry"
	"github.com/cwbudde/algo-fec/internal/cpu"
)

var (
	defaultKernel     registry.OpEntry
	defaultKernelOnce sync.Once
)

func initDefaultKernel() {
	entry := registry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("viterbi: no trellis kernel registered (missing generic fallback?)")
	}

	if entry.Update == nil {
		panic("viterbi: selected kernel missing Update")
	}

	defaultKernel = *entry
}

func selectKernel(name string) (registry.OpEntry, error) {
	if name == "" {
		defaultKernelOnce.Do(initDefaultKernel)
		return defaultKernel, nil
	}

	entry := registry.Global.ByName(name)
	if entry == nil || entry.Update == nil {
		return registry.OpEntry{}, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}

	return *entry, nil
}

// DefaultBackend returns the name of the kernel decoders use by default.
func DefaultBackend() string {
	defaultKernelOnce.Do(initDefaultKernel)
	return defaultKernel.Name
}

// Backends returns the names of the registered kernels, best first.
func Backends() []string {
	entries := registry.Global.ListEntries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
