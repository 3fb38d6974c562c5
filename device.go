// Package frontier simulated compute devices and execution contexts.
// Each device models a GPU-class or CPU-class accelerator: kernels are
// launched over a grid of thread blocks and fan out across the device's
// worker lanes.
package frontier

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// DeviceClass distinguishes accelerator-class from CPU-class devices for
// workload weighting in the partitioner.
type DeviceClass int

const (
	// ClassAccelerator is a GPU-class device
	ClassAccelerator DeviceClass = iota
	// ClassCPU is a CPU-class device
	ClassCPU
)

// String returns the device class as a string
func (c DeviceClass) String() string {
	switch c {
	case ClassAccelerator:
		return "accelerator"
	case ClassCPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// Device represents a compute device. Each device has a unique ID, a class,
// and a number of worker lanes that execute kernel blocks in parallel.
type Device struct {
	ID      int         // Unique device identifier
	Name    string      // Human-readable device name
	Class   DeviceClass // Device class for workload weighting
	Workers int         // Parallel worker lanes for kernel execution
}

// Context represents an execution context for one device. It manages the
// device's memory pool and stream execution. A Context must be created
// before launching kernels on a device and closed when no longer needed.
type Context struct {
	device        *Device
	streams       map[int]*Stream
	streamID      int32
	memory        *MemoryPool
	defaultStream *Stream
	mu            sync.Mutex
}

// Stream represents an ordered sequence of operations that execute
// asynchronously. Operations within a stream execute in order, but
// operations in different streams may execute concurrently. Stream ordering
// is what gives the relaxation kernels their phase barrier.
type Stream struct {
	id    int
	tasks chan func()
	done  chan struct{}
	wg    sync.WaitGroup
}

// Dim3 represents 3D dimensions for grid and block configurations.
type Dim3 struct {
	X, Y, Z int
}

// ThreadID identifies a thread's position within the execution hierarchy.
type ThreadID struct {
	BlockIdx  Dim3 // Block index within the grid
	ThreadIdx Dim3 // Thread index within the block
	BlockDim  Dim3 // Dimensions of the block
	GridDim   Dim3 // Dimensions of the grid
}

// Kernel represents a compute kernel that can be executed in parallel.
// Implementations must be thread-safe as Execute will be called
// concurrently from multiple worker lanes.
type Kernel interface {
	Execute(tid ThreadID, args ...interface{})
}

// KernelFunc is a function that can be launched as a kernel.
type KernelFunc func(tid ThreadID, args ...interface{})

// Implement KernelFunc as Kernel
func (fn KernelFunc) Execute(tid ThreadID, args ...interface{}) {
	fn(tid, args...)
}

// Global runtime state: a default accelerator-class device spanning all
// host cores, used by the package-level convenience functions.
var (
	defaultDevice  *Device
	defaultContext *Context
	initOnce       sync.Once
)

func init() {
	initOnce.Do(func() {
		defaultDevice = &Device{
			ID:      0,
			Name:    "Simulated Accelerator",
			Class:   ClassAccelerator,
			Workers: runtime.NumCPU(),
		}
		defaultContext = NewContext(defaultDevice)
	})
}

// NewDevice constructs a simulated device. Workers <= 0 selects one lane
// per host core.
func NewDevice(id int, name string, class DeviceClass, workers int) *Device {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Device{
		ID:      id,
		Name:    name,
		Class:   class,
		Workers: workers,
	}
}

// EnumerateDevices returns the default device list for this host: one
// accelerator-class device spanning all cores and one CPU-class device with
// half the lanes. Callers may also assemble their own device lists, e.g.
// several simulated devices for partitioning tests.
func EnumerateDevices() []*Device {
	cpuWorkers := runtime.NumCPU() / 2
	if cpuWorkers < 1 {
		cpuWorkers = 1
	}
	return []*Device{
		NewDevice(0, "Simulated Accelerator", ClassAccelerator, runtime.NumCPU()),
		NewDevice(1, cpuDeviceName(), ClassCPU, cpuWorkers),
	}
}

// NewContext creates an execution context for the given device, including
// its default stream and memory pool.
func NewContext(dev *Device) *Context {
	if dev == nil {
		return nil
	}
	ctx := &Context{
		device:  dev,
		streams: make(map[int]*Stream),
		memory:  NewMemoryPool(),
	}
	ctx.defaultStream = ctx.CreateStream()
	return ctx
}

// Device returns the device this context executes on.
func (ctx *Context) Device() *Device {
	return ctx.device
}

// CreateStream creates a new execution stream
func (ctx *Context) CreateStream() *Stream {
	id := int(atomic.AddInt32(&ctx.streamID, 1))
	stream := &Stream{
		id:    id,
		tasks: make(chan func(), 1000),
		done:  make(chan struct{}),
	}

	// Start worker goroutine for stream
	go stream.worker()

	ctx.mu.Lock()
	ctx.streams[id] = stream
	ctx.mu.Unlock()
	return stream
}

// Launch executes a kernel on the default stream
func (ctx *Context) Launch(kernel Kernel, grid, block Dim3, args ...interface{}) error {
	return ctx.LaunchStream(kernel, grid, block, ctx.defaultStream, args...)
}

// LaunchFunc executes a kernel function on the default stream
func (ctx *Context) LaunchFunc(fn KernelFunc, grid, block Dim3, args ...interface{}) error {
	return ctx.LaunchFuncStream(fn, grid, block, ctx.defaultStream, args...)
}

// LaunchStream executes a kernel on a specific stream
func (ctx *Context) LaunchStream(kernel Kernel, grid, block Dim3, stream *Stream, args ...interface{}) error {
	return ctx.launchInternal(kernel.Execute, grid, block, stream, args...)
}

// LaunchFuncStream executes a kernel function on a specific stream
func (ctx *Context) LaunchFuncStream(fn KernelFunc, grid, block Dim3, stream *Stream, args ...interface{}) error {
	return ctx.launchInternal(fn, grid, block, stream, args...)
}

// Synchronize waits for all streams to complete
func (ctx *Context) Synchronize() error {
	ctx.mu.Lock()
	streams := make([]*Stream, 0, len(ctx.streams))
	for _, stream := range ctx.streams {
		streams = append(streams, stream)
	}
	ctx.mu.Unlock()

	for _, stream := range streams {
		stream.Synchronize()
	}
	return nil
}

// Close drains all streams and shuts down their workers. The context must
// not be used after Close.
func (ctx *Context) Close() error {
	ctx.mu.Lock()
	streams := ctx.streams
	ctx.streams = make(map[int]*Stream)
	ctx.mu.Unlock()

	for _, stream := range streams {
		stream.Synchronize()
		close(stream.tasks)
		<-stream.done
	}
	return nil
}

// Stream methods

// worker processes tasks for a stream
func (s *Stream) worker() {
	for task := range s.tasks {
		task()
		s.wg.Done()
	}
	close(s.done)
}

// Synchronize waits for all tasks in the stream to complete
func (s *Stream) Synchronize() {
	s.wg.Wait()
}

// Submit adds a task to the stream
func (s *Stream) Submit(task func()) {
	s.wg.Add(1)
	s.tasks <- task
}

// Package-level convenience functions bound to the default context

// Malloc allocates device memory of the specified size in bytes on the
// default device.
func Malloc(size int) (DevicePtr, error) {
	return defaultContext.Malloc(size)
}

// Free releases device memory allocated by Malloc.
func Free(ptr DevicePtr) error {
	return defaultContext.Free(ptr)
}

// Memcpy copies memory between host and device on the default context.
func Memcpy(dst, src interface{}, size int, kind MemcpyKind) error {
	return defaultContext.Memcpy(dst, src, size, kind)
}

// Launch executes a kernel on the default context's default stream.
func Launch(kernel Kernel, grid, block Dim3, args ...interface{}) error {
	return defaultContext.Launch(kernel, grid, block, args...)
}

// LaunchFunc executes a kernel function on the default context.
func LaunchFunc(fn KernelFunc, grid, block Dim3, args ...interface{}) error {
	return defaultContext.LaunchFunc(fn, grid, block, args...)
}

// Synchronize waits for all operations on the default context to complete.
func Synchronize() error {
	return defaultContext.Synchronize()
}

// GetDevice returns the default device.
func GetDevice() *Device {
	return defaultDevice
}

// Helper functions

// Global returns the global thread index
func (tid ThreadID) Global() int {
	return tid.BlockIdx.X*tid.BlockDim.X + tid.ThreadIdx.X
}

// Size returns the total number of elements
func (d Dim3) Size() int {
	return d.X * d.Y * d.Z
}
