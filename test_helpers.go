package frontier

import (
	"testing"
)

// MallocOrFail allocates device memory and fails the test if unsuccessful
func MallocOrFail(t testing.TB, size int) DevicePtr {
	t.Helper()
	ptr, err := Malloc(size)
	if err != nil {
		t.Fatalf("Failed to allocate %d bytes: %v", size, err)
	}
	return ptr
}

// MemcpyOrFail copies data and fails the test if unsuccessful
func MemcpyOrFail(t testing.TB, dst DevicePtr, src interface{}, size int, direction MemcpyKind) {
	t.Helper()
	err := Memcpy(dst, src, size, direction)
	if err != nil {
		t.Fatalf("Memcpy failed: %v", err)
	}
}

// LaunchOrFail launches a kernel and fails the test if unsuccessful
func LaunchOrFail(t testing.TB, kernel KernelFunc, grid, block Dim3, args ...interface{}) {
	t.Helper()
	err := LaunchFunc(kernel, grid, block, args...)
	if err != nil {
		t.Fatalf("Kernel launch failed: %v", err)
	}
}

// SynchronizeOrFail synchronizes and fails the test if unsuccessful
func SynchronizeOrFail(t testing.TB) {
	t.Helper()
	err := Synchronize()
	if err != nil {
		t.Fatalf("Synchronize failed: %v", err)
	}
}

// ReferenceCosts runs the reference engine for a batch and fails the test
// on error. The returned buffer holds one row per query.
func ReferenceCosts(t testing.TB, g *Graph, sources []int32) []float32 {
	t.Helper()
	out := make([]float32, len(sources)*g.VertexCount())
	if err := RunReference(g, sources, out); err != nil {
		t.Fatalf("RunReference failed: %v", err)
	}
	return out
}
