package frontier

import (
	"testing"
)

// Test basic memory allocation and deallocation
func TestMemoryAllocation(t *testing.T) {
	sizes := []int{100, 1000, 10000, 1000000}

	for _, size := range sizes {
		ptr, err := Malloc(size * 4)
		if err != nil {
			t.Fatalf("Failed to allocate %d bytes: %v", size*4, err)
		}

		// Verify we can access the memory
		slice := ptr.Float32()
		if len(slice) != size {
			t.Errorf("Expected slice length %d, got %d", size, len(slice))
		}

		// Write and read test
		n := size
		if n > 100 {
			n = 100
		}
		for i := 0; i < n; i++ {
			slice[i] = float32(i)
		}
		for i := 0; i < n; i++ {
			if slice[i] != float32(i) {
				t.Errorf("Memory corruption at index %d", i)
			}
		}

		if err := Free(ptr); err != nil {
			t.Fatalf("Failed to free memory: %v", err)
		}
	}
}

func TestMallocRejectsBadSize(t *testing.T) {
	if _, err := Malloc(0); err == nil {
		t.Error("Malloc(0) should fail")
	}
	if _, err := Malloc(-4); err == nil {
		t.Error("Malloc(-4) should fail")
	}
}

func TestDoubleFree(t *testing.T) {
	ptr := MallocOrFail(t, 1024)
	if err := Free(ptr); err != nil {
		t.Fatalf("First free failed: %v", err)
	}
	if err := Free(ptr); err != ErrDoubleFree {
		t.Errorf("Expected ErrDoubleFree, got %v", err)
	}
}

// Test memory copy operations between host and device views
func TestMemcpy(t *testing.T) {
	const N = 1000

	hSrc := make([]float32, N)
	hDst := make([]float32, N)
	for i := 0; i < N; i++ {
		hSrc[i] = float32(i) * 0.5
	}

	dSrc := MallocOrFail(t, N*4)
	dDst := MallocOrFail(t, N*4)
	defer Free(dSrc)
	defer Free(dDst)

	MemcpyOrFail(t, dSrc, hSrc, N*4, MemcpyHostToDevice)
	MemcpyOrFail(t, dDst, dSrc, N*4, MemcpyDeviceToDevice)

	if err := Memcpy(hDst, dDst, N*4, MemcpyDeviceToHost); err != nil {
		t.Fatalf("D2H copy failed: %v", err)
	}

	for i := 0; i < N; i++ {
		if hSrc[i] != hDst[i] {
			t.Errorf("Data mismatch at index %d: %f vs %f", i, hSrc[i], hDst[i])
		}
	}
}

func TestMemcpyRejectsUnsupportedTypes(t *testing.T) {
	d := MallocOrFail(t, 64)
	defer Free(d)

	if err := Memcpy(d, []float64{1, 2}, 16, MemcpyHostToDevice); err == nil {
		t.Error("Memcpy should reject []float64 src")
	}
	if err := Memcpy("not a buffer", d, 16, MemcpyDeviceToHost); err == nil {
		t.Error("Memcpy should reject string dst")
	}
}

// Test basic kernel launch
func TestKernelLaunch(t *testing.T) {
	const N = 10000

	dData := MallocOrFail(t, N*4)
	defer Free(dData)

	slice := dData.Float32()
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		idx := tid.Global()
		if idx < N {
			slice[idx] = float32(idx)
		}
	})

	grid, block := launchConfig(N)
	LaunchOrFail(t, kernel, grid, block)
	SynchronizeOrFail(t)

	for i := 0; i < N; i++ {
		if slice[i] != float32(i) {
			t.Fatalf("Kernel did not write index %d: got %f", i, slice[i])
		}
	}
}

func TestEmptyGridLaunch(t *testing.T) {
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		t.Error("kernel executed for empty grid")
	})
	if err := LaunchFunc(kernel, Dim3{}, Dim3{X: 256, Y: 1, Z: 1}); err != nil {
		t.Fatalf("Empty grid launch failed: %v", err)
	}
	SynchronizeOrFail(t)
}

func TestOversizedBlockRejected(t *testing.T) {
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {})
	err := LaunchFunc(kernel, Dim3{X: 1, Y: 1, Z: 1}, Dim3{X: MaxThreadsPerBlock + 1, Y: 1, Z: 1})
	if err == nil {
		t.Error("Launch should reject blocks larger than MaxThreadsPerBlock")
	}
}

// Stream ordering: tasks launched on the same stream must execute in order.
// The relaxation loop relies on this for the phase-1/phase-2 barrier.
func TestStreamOrdering(t *testing.T) {
	const iterations = 100

	dData := MallocOrFail(t, 4)
	defer Free(dData)

	slice := dData.Float32()
	slice[0] = 0

	double := KernelFunc(func(tid ThreadID, args ...interface{}) {
		if tid.Global() == 0 {
			slice[0] = slice[0]*2 + 1
		}
	})

	one := Dim3{X: 1, Y: 1, Z: 1}
	for i := 0; i < iterations; i++ {
		LaunchOrFail(t, double, one, one)
	}
	SynchronizeOrFail(t)

	// With in-order execution the result is 2^100 - 1, which saturates
	// well past float precision; reordering or lost launches would
	// produce a smaller value.
	want := float32(1)
	for i := 1; i < iterations; i++ {
		want = want*2 + 1
	}
	if slice[0] != want {
		t.Errorf("Stream executed out of order: got %g, want %g", slice[0], want)
	}
}

func TestDevicePtrOffset(t *testing.T) {
	const N = 512
	d := MallocOrFail(t, N*4)
	defer Free(d)

	slice := d.Float32()
	for i := range slice {
		slice[i] = float32(i)
	}

	half := d.Offset(N / 2 * 4)
	halfSlice := half.Float32()
	if len(halfSlice) != N/2 {
		t.Fatalf("Offset view has %d elements, want %d", len(halfSlice), N/2)
	}
	if halfSlice[0] != float32(N/2) {
		t.Errorf("Offset view starts at %f, want %f", halfSlice[0], float32(N/2))
	}
}

// Memory pool must reuse freed blocks across per-run working sets
func TestMemoryPoolReuse(t *testing.T) {
	pool := NewMemoryPool()

	first, err := pool.Allocate(4096)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if err := pool.Free(first); err != nil {
		t.Fatalf("Free failed: %v", err)
	}

	second, err := pool.Allocate(2048)
	if err != nil {
		t.Fatalf("Allocate after free failed: %v", err)
	}
	if second.ptr != first.ptr {
		t.Error("Pool did not reuse the freed block")
	}

	allocated, peak := pool.GetStats()
	if allocated <= 0 || peak < allocated {
		t.Errorf("Implausible pool stats: allocated=%d peak=%d", allocated, peak)
	}
}

func TestContextPerDevice(t *testing.T) {
	devices := []*Device{
		NewDevice(0, "sim-0", ClassAccelerator, 2),
		NewDevice(1, "sim-1", ClassCPU, 1),
	}

	for _, dev := range devices {
		ctx := NewContext(dev)
		if ctx.Device() != dev {
			t.Errorf("Context bound to wrong device")
		}

		ptr, err := ctx.Malloc(1024)
		if err != nil {
			t.Fatalf("Context Malloc failed: %v", err)
		}
		if err := ctx.Free(ptr); err != nil {
			t.Fatalf("Context Free failed: %v", err)
		}
		if err := ctx.Close(); err != nil {
			t.Fatalf("Context Close failed: %v", err)
		}
	}
}

func TestEnumerateDevices(t *testing.T) {
	devices := EnumerateDevices()
	if len(devices) == 0 {
		t.Fatal("EnumerateDevices returned no devices")
	}
	for _, dev := range devices {
		if dev.Workers < 1 {
			t.Errorf("Device %q has no workers", dev.Name)
		}
	}
	if devices[0].Class != ClassAccelerator {
		t.Error("First enumerated device should be accelerator-class")
	}
	if devices[1].Class != ClassCPU {
		t.Error("Second enumerated device should be CPU-class")
	}
}
