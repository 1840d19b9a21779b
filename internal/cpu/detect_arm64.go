//go:build arm64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// ASIMD is mandatory on ARMv8 so HasNEON is true on every arm64 host.
func detectFeaturesImpl() Features {
	return Features{
		HasNEON:      cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}
