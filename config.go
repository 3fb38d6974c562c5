// Package frontier configuration constants
package frontier

import "math"

// Cost sentinel
const (
	// InfiniteCost marks a vertex as unreachable. Working arrays are
	// initialized to this value and unreachable vertices report it
	// unchanged after convergence.
	InfiniteCost float32 = math.MaxFloat32
)

// Thread and block dimensions
const (
	// Default block size for relaxation kernels
	DefaultBlockSize = 256

	// Maximum threads per block
	MaxThreadsPerBlock = 1024
)

// Memory pool parameters
const (
	// Memory alignment for device allocations
	MemoryAlignment = 64
)

// Workload partitioning
const (
	// DefaultThroughputRatio is the CPU-class to accelerator-class
	// throughput weight used when the caller does not supply one.
	// A ratio of 1 weights both classes equally.
	DefaultThroughputRatio = 1.0
)
