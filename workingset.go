package frontier

import (
	"errors"
)

// workingSet holds the per-device scratch memory for one runner: device
// copies of the graph's three arrays plus the cost, updatingCost and
// frontier-mask arrays, all sized to the vertex count. Allocated once per
// run, reinitialized per query, released when the runner finishes.
type workingSet struct {
	ctx         *Context
	vertexCount int
	edgeCount   int

	// Read-only graph copies, shared by every query of the run
	vertices DevicePtr
	edges    DevicePtr
	weights  DevicePtr

	// Per-query arrays, reinitialized by initialize
	cost     DevicePtr
	updating DevicePtr
	mask     DevicePtr

	// Host-visible mask copy for convergence checks
	hostMask []int32
}

// newWorkingSet allocates the working set on ctx's device and transfers the
// graph arrays into it.
func newWorkingSet(ctx *Context, g *Graph) (*workingSet, error) {
	ws := &workingSet{
		ctx:         ctx,
		vertexCount: g.VertexCount(),
		edgeCount:   g.EdgeCount(),
		hostMask:    make([]int32, g.VertexCount()),
	}

	var err error
	alloc := func(bytes int) DevicePtr {
		if err != nil {
			return DevicePtr{}
		}
		var ptr DevicePtr
		ptr, err = ctx.Malloc(bytes)
		return ptr
	}

	vb := ws.vertexCount * 4
	eb := ws.edgeCount * 4

	ws.vertices = alloc(vb)
	if eb > 0 {
		ws.edges = alloc(eb)
		ws.weights = alloc(eb)
	}
	ws.cost = alloc(vb)
	ws.updating = alloc(vb)
	ws.mask = alloc(vb)
	if err != nil {
		ws.release()
		return nil, NewMemoryError("newWorkingSet", "failed to allocate device working set", err)
	}

	if err := ctx.Memcpy(ws.vertices, g.vertexArray, vb, MemcpyHostToDevice); err != nil {
		ws.release()
		return nil, err
	}
	if eb > 0 {
		if err := ctx.Memcpy(ws.edges, g.edgeArray, eb, MemcpyHostToDevice); err != nil {
			ws.release()
			return nil, err
		}
		if err := ctx.Memcpy(ws.weights, g.weightArray, eb, MemcpyHostToDevice); err != nil {
			ws.release()
			return nil, err
		}
	}

	return ws, nil
}

// initialize launches the init kernel for a new source vertex and waits for
// it so the relaxation loop only ever sees fully initialized arrays.
func (ws *workingSet) initialize(source int32) error {
	grid, block := launchConfig(ws.vertexCount)
	kernel := initKernel(ws.mask.Int32(), ws.cost.Float32(), ws.updating.Float32(), source, ws.vertexCount)
	if err := ws.ctx.LaunchFunc(kernel, grid, block); err != nil {
		return err
	}
	return ws.ctx.Synchronize()
}

// readMask transfers the frontier mask back to host-visible memory.
func (ws *workingSet) readMask() error {
	return ws.ctx.Memcpy(ws.hostMask, ws.mask, ws.vertexCount*4, MemcpyDeviceToHost)
}

// release returns all working-set buffers to the device pool.
func (ws *workingSet) release() error {
	var errs []error
	for _, ptr := range []DevicePtr{ws.vertices, ws.edges, ws.weights, ws.cost, ws.updating, ws.mask} {
		if ptr.Size() == 0 {
			continue
		}
		if err := ws.ctx.Free(ptr); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
