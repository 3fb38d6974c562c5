package frontier

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures tracks the instruction set extensions of the host CPU that
// back CPU-class devices. Purely informational: kernel execution is the
// same on every class, but device names surface what the host offers.
type CPUFeatures struct {
	HasAVX     bool
	HasAVX2    bool
	HasAVX512F bool
	HasFMA     bool
	HasSSE4    bool
	HasNEON    bool
}

// Global CPU feature detection
var cpuFeatures CPUFeatures

func init() {
	detectCPUFeatures()
}

// detectCPUFeatures populates the global cpuFeatures struct
func detectCPUFeatures() {
	cpuFeatures = CPUFeatures{
		HasSSE4:    cpu.X86.HasSSE41 || cpu.X86.HasSSE42,
		HasAVX:     cpu.X86.HasAVX,
		HasAVX2:    cpu.X86.HasAVX2,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasFMA:     cpu.X86.HasFMA,
		HasNEON:    cpu.ARM64.HasASIMD,
	}
}

// HostCPUFeatures returns the detected feature set of the host CPU.
func HostCPUFeatures() CPUFeatures {
	return cpuFeatures
}

// cpuDeviceName builds a descriptive name for the host CPU-class device,
// e.g. "CPU/amd64 (AVX2, FMA)".
func cpuDeviceName() string {
	var tags []string
	if cpuFeatures.HasAVX512F {
		tags = append(tags, "AVX512")
	} else if cpuFeatures.HasAVX2 {
		tags = append(tags, "AVX2")
	} else if cpuFeatures.HasAVX {
		tags = append(tags, "AVX")
	} else if cpuFeatures.HasSSE4 {
		tags = append(tags, "SSE4")
	}
	if cpuFeatures.HasFMA {
		tags = append(tags, "FMA")
	}
	if cpuFeatures.HasNEON {
		tags = append(tags, "NEON")
	}

	name := "CPU/" + runtime.GOARCH
	if len(tags) > 0 {
		name = fmt.Sprintf("%s (%s)", name, strings.Join(tags, ", "))
	}
	return name
}
