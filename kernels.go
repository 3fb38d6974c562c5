package frontier

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// Relaxation kernel pair for the frontier-based SSSP fixed-point iteration.
//
// Phase 1 (relaxKernel): every vertex in the frontier leaves the frontier
// and scatters cost[tid]+w into updatingCost[nid] for each outgoing edge.
// Phase 2 (commitKernel): every vertex commits an improved updatingCost into
// cost, re-entering the frontier if it improved, and re-synchronizes the two
// arrays. The host re-reads the mask after each phase-2 sweep; an empty mask
// is the fixed point.
//
// Phase 1 must fully complete before phase 2 begins. Launching both on the
// same stream and synchronizing before the mask read provides that barrier.

// atomicMinFloat32 lowers *addr to v if v is smaller, atomically.
//
// Concurrent lanes fan in on the same updatingCost entry when several
// frontier vertices share a destination. The original formulation left these
// writes unsynchronized and relied on re-convergence in later iterations;
// under the Go memory model that is a data race, so the minimum is taken
// with a CAS loop instead. For non-negative IEEE-754 floats (including
// +Inf) the bit patterns order identically to the values, so the loop
// terminates holding the true minimum.
func atomicMinFloat32(addr *float32, v float32) {
	p := (*uint32)(unsafe.Pointer(addr))
	newBits := math.Float32bits(v)
	for {
		oldBits := atomic.LoadUint32(p)
		if math.Float32frombits(oldBits) <= v {
			return
		}
		if atomic.CompareAndSwapUint32(p, oldBits, newBits) {
			return
		}
	}
}

// initKernel resets the working arrays for a new query: the source vertex
// enters the frontier with cost 0, every other vertex leaves it with
// infinite cost.
func initKernel(mask []int32, cost, updating []float32, source int32, vertexCount int) KernelFunc {
	return func(t ThreadID, args ...interface{}) {
		tid := t.Global()
		if tid >= vertexCount {
			return
		}
		if int32(tid) == source {
			mask[tid] = 1
			cost[tid] = 0
			updating[tid] = 0
		} else {
			mask[tid] = 0
			cost[tid] = InfiniteCost
			updating[tid] = InfiniteCost
		}
	}
}

// relaxKernel is phase 1: frontier vertices relax their outgoing edges.
// Weights are indexed by edge, not by destination vertex.
func relaxKernel(vertices, edges []int32, weights []float32, mask []int32, cost, updating []float32, vertexCount, edgeCount int) KernelFunc {
	return func(t ThreadID, args ...interface{}) {
		tid := t.Global()
		if tid >= vertexCount || mask[tid] == 0 {
			return
		}
		mask[tid] = 0

		edgeStart := int(vertices[tid])
		edgeEnd := edgeCount
		if tid+1 < vertexCount {
			edgeEnd = int(vertices[tid+1])
		}

		c := cost[tid]
		for edge := edgeStart; edge < edgeEnd; edge++ {
			nid := edges[edge]
			atomicMinFloat32(&updating[nid], c+weights[edge])
		}
	}
}

// commitKernel is phase 2: commit improved costs, rebuild the frontier, and
// re-synchronize updatingCost with cost whether or not a commit happened.
func commitKernel(mask []int32, cost, updating []float32, vertexCount int) KernelFunc {
	return func(t ThreadID, args ...interface{}) {
		tid := t.Global()
		if tid >= vertexCount {
			return
		}
		if cost[tid] > updating[tid] {
			cost[tid] = updating[tid]
			mask[tid] = 1
		}
		updating[tid] = cost[tid]
	}
}

// maskEmpty reports whether the frontier is empty, i.e. the query has
// converged to its fixed point.
func maskEmpty(mask []int32) bool {
	for _, m := range mask {
		if m == 1 {
			return false
		}
	}
	return true
}
