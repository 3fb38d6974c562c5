//go:build linux

// Package frontier Linux hardware counter collection via perf_event_open
package frontier

import (
	"encoding/binary"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// perfEventConfig names one hardware counter to open
type perfEventConfig struct {
	name   string
	typ    uint32
	config uint64
}

// LinuxPerfMonitor provides direct access to hardware performance counters
type LinuxPerfMonitor struct {
	fds      []int
	counters []perfEventConfig
}

// NewLinuxPerfMonitor creates a performance monitor using perf_event_open
func NewLinuxPerfMonitor() *LinuxPerfMonitor {
	return &LinuxPerfMonitor{
		counters: []perfEventConfig{
			{"cycles", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CPU_CYCLES},
			{"instructions", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_INSTRUCTIONS},
			{"branch-misses", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_BRANCH_MISSES},
			{"cache-misses", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CACHE_MISSES},
			{"L1-dcache-load-misses", unix.PERF_TYPE_HW_CACHE,
				cacheConfig(unix.PERF_COUNT_HW_CACHE_L1D, unix.PERF_COUNT_HW_CACHE_OP_READ, unix.PERF_COUNT_HW_CACHE_RESULT_MISS)},
			{"LLC-load-misses", unix.PERF_TYPE_HW_CACHE,
				cacheConfig(unix.PERF_COUNT_HW_CACHE_LL, unix.PERF_COUNT_HW_CACHE_OP_READ, unix.PERF_COUNT_HW_CACHE_RESULT_MISS)},
		},
	}
}

// cacheConfig creates a cache event configuration
func cacheConfig(cache, op, result uint64) uint64 {
	return cache | (op << 8) | (result << 16)
}

// Start begins performance counter collection
func (pm *LinuxPerfMonitor) Start() error {
	pm.Stop()

	pm.fds = make([]int, 0, len(pm.counters))

	for _, counter := range pm.counters {
		attr := unix.PerfEventAttr{
			Type:   counter.typ,
			Config: counter.config,
			Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
		}
		attr.Size = uint32(binary.Size(attr))

		// Monitor current process on any CPU
		fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			pm.Stop()
			return NewExecutionError("PerfMonitor.Start",
				"failed to open perf event "+counter.name, err)
		}

		pm.fds = append(pm.fds, fd)

		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0)
		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0)
	}

	return nil
}

// Stop ends collection and returns counters
func (pm *LinuxPerfMonitor) Stop() *PerfCounters {
	if len(pm.fds) == 0 {
		return &PerfCounters{}
	}

	counters := &PerfCounters{}

	buf := make([]byte, 8)
	for i, fd := range pm.fds {
		n, err := unix.Read(fd, buf)
		if err == nil && n == 8 {
			value := binary.LittleEndian.Uint64(buf)
			switch pm.counters[i].name {
			case "cycles":
				counters.Cycles = value
			case "instructions":
				counters.Instructions = value
			case "branch-misses":
				counters.BranchMisses = value
			case "cache-misses":
				counters.CacheMisses = value
			case "L1-dcache-load-misses":
				counters.L1DCacheMisses = value
			case "LLC-load-misses":
				counters.L3CacheMisses = value
			}
		}

		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_DISABLE, 0)
		unix.Close(fd)
	}

	pm.fds = nil

	if counters.Cycles > 0 {
		counters.IPC = float64(counters.Instructions) / float64(counters.Cycles)
	}

	if counters.CacheMisses > 0 && counters.L3CacheMisses > 0 {
		counters.CacheMissRate = float64(counters.L3CacheMisses) / float64(counters.CacheMisses)
	}

	return counters
}

// MeasureWithHardwareCounters times fn and collects hardware counters,
// degrading to timing alone when perf events are unavailable (no perf
// support in the kernel, or insufficient perf_event_paranoid privileges).
func MeasureWithHardwareCounters(fn func() error) (*PerfCounters, error) {
	monitor := NewLinuxPerfMonitor()
	useHWCounters := monitor.Start() == nil

	start := time.Now()
	if err := fn(); err != nil {
		if useHWCounters {
			monitor.Stop()
		}
		return nil, err
	}
	duration := time.Since(start)

	counters := &PerfCounters{}
	if useHWCounters {
		counters = monitor.Stop()
	}
	counters.Duration = duration
	return counters, nil
}

// integrateHardwareCounters runs the benchmark body under hardware counters
// when the kernel permits it.
func integrateHardwareCounters(b *testing.B, fn func()) *PerfCounters {
	monitor := NewLinuxPerfMonitor()

	err := monitor.Start()
	useHWCounters := err == nil

	for i := 0; i < b.N; i++ {
		fn()
	}

	if !useHWCounters {
		return nil
	}
	return monitor.Stop()
}
