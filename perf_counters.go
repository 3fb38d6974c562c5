// Package frontier performance counter integration for relaxation benchmarks
package frontier

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// PerfCounters holds performance counter measurements for a relaxation run
type PerfCounters struct {
	// Timing
	Duration time.Duration

	// CPU counters
	Cycles         uint64
	Instructions   uint64
	BranchMisses   uint64
	CacheMisses    uint64
	L1DCacheMisses uint64
	L3CacheMisses  uint64

	// Derived metrics
	IPC            float64 // Instructions per cycle
	EdgesPerSecond float64 // Relaxed edges per second
	CacheMissRate  float64 // L3 miss rate
}

// MeasureRun times fn and returns counters. On platforms with hardware
// counter support the timing is augmented with cycle and cache statistics;
// elsewhere only Duration is populated.
func MeasureRun(fn func() error) (*PerfCounters, error) {
	return MeasureWithHardwareCounters(fn)
}

// CalculateMetrics computes derived performance metrics. relaxedEdges is the
// total number of edge relaxations performed during Duration.
func (pc *PerfCounters) CalculateMetrics(relaxedEdges uint64) {
	if pc.Duration > 0 {
		pc.EdgesPerSecond = float64(relaxedEdges) / pc.Duration.Seconds()
	}

	if pc.CacheMisses > 0 && pc.L3CacheMisses > 0 {
		pc.CacheMissRate = float64(pc.L3CacheMisses) / float64(pc.CacheMisses)
	}
}

// String formats performance counters for display
func (pc *PerfCounters) String() string {
	var sb strings.Builder

	sb.WriteString("Performance Counters:\n")
	if pc.Duration > 0 {
		sb.WriteString(fmt.Sprintf("  Duration:          %v\n", pc.Duration))
	}
	if pc.Cycles > 0 {
		sb.WriteString(fmt.Sprintf("  CPU Cycles:        %d\n", pc.Cycles))
		sb.WriteString(fmt.Sprintf("  Instructions:      %d\n", pc.Instructions))
		sb.WriteString(fmt.Sprintf("  IPC:               %.2f\n", pc.IPC))
	}
	if pc.BranchMisses > 0 {
		sb.WriteString(fmt.Sprintf("  Branch Misses:     %d\n", pc.BranchMisses))
	}
	if pc.L1DCacheMisses > 0 {
		sb.WriteString(fmt.Sprintf("  L1D Cache Misses:  %d\n", pc.L1DCacheMisses))
	}
	if pc.L3CacheMisses > 0 {
		sb.WriteString(fmt.Sprintf("  L3 Cache Misses:   %d\n", pc.L3CacheMisses))
		sb.WriteString(fmt.Sprintf("  Cache Miss Rate:   %.2f%%\n", pc.CacheMissRate*100))
	}
	if pc.EdgesPerSecond > 0 {
		sb.WriteString(fmt.Sprintf("  Edge Relaxations:  %.2f M/s\n", pc.EdgesPerSecond/1e6))
	}

	return sb.String()
}

// BenchmarkWithCounters runs a benchmark with hardware counter collection
// where the platform supports it, reporting IPC and cache-miss metrics
// alongside the standard ns/op.
func BenchmarkWithCounters(b *testing.B, fn func()) {
	// Warm up
	fn()

	b.ResetTimer()

	start := time.Now()
	counters := integrateHardwareCounters(b, fn)
	duration := time.Since(start)

	b.ReportMetric(float64(b.N)/duration.Seconds(), "runs/s")

	if counters != nil {
		if counters.IPC > 0 {
			b.ReportMetric(counters.IPC, "IPC")
		}
		if counters.L3CacheMisses > 0 {
			b.ReportMetric(float64(counters.L3CacheMisses)/float64(b.N), "L3misses/op")
		}
		if counters.BranchMisses > 0 {
			b.ReportMetric(float64(counters.BranchMisses)/float64(b.N), "branch-misses/op")
		}
	}
}
