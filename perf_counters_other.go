//go:build !linux

// Package frontier stub for platforms without perf_event support
package frontier

import (
	"testing"
	"time"
)

// MeasureWithHardwareCounters times fn; platforms without perf_event
// support populate Duration only.
func MeasureWithHardwareCounters(fn func() error) (*PerfCounters, error) {
	start := time.Now()
	if err := fn(); err != nil {
		return nil, err
	}
	return &PerfCounters{Duration: time.Since(start)}, nil
}

// integrateHardwareCounters runs the benchmark body without hardware
// counters.
func integrateHardwareCounters(b *testing.B, fn func()) *PerfCounters {
	for i := 0; i < b.N; i++ {
		fn()
	}
	return nil
}
