package frontier

import (
	"fmt"
)

// RunSingleDevice computes the shortest-path costs for every query in
// sources on a single device. out must be pre-allocated with
// len(sources) * g.VertexCount() elements; row q receives the cost vector
// of query q, with InfiniteCost for unreachable vertices.
//
// Queries are processed strictly sequentially on the device: the working
// set is reused and reinitialized between queries, so no state leaks from
// one query to the next.
func RunSingleDevice(g *Graph, sources []int32, out []float32, dev *Device) error {
	if err := checkRunArgs(g, sources, out); err != nil {
		return err
	}
	if dev == nil {
		return ErrInvalidDevice
	}

	ctx := NewContext(dev)
	defer ctx.Close()

	return runOn(ctx, g, sources, out)
}

// runOn drives the relaxation loop for a contiguous query slice on an
// already-opened device context. Failures are fatal to the run and surface
// to the caller; nothing is retried.
func runOn(ctx *Context, g *Graph, sources []int32, out []float32) error {
	ws, err := newWorkingSet(ctx, g)
	if err != nil {
		return err
	}
	defer ws.release()

	vc := g.VertexCount()
	grid, block := launchConfig(vc)

	relax := relaxKernel(ws.vertices.Int32(), ws.edges.Int32(), ws.weights.Float32(),
		ws.mask.Int32(), ws.cost.Float32(), ws.updating.Float32(), vc, g.EdgeCount())
	commit := commitKernel(ws.mask.Int32(), ws.cost.Float32(), ws.updating.Float32(), vc)

	for i, source := range sources {
		if err := ws.initialize(source); err != nil {
			return err
		}
		if err := ws.readMask(); err != nil {
			return err
		}

		// Iterate the kernel pair until the frontier empties. Each
		// iteration is barrier-synchronized: phase 1 and phase 2 are
		// stream-ordered, and the host blocks on the mask read before
		// deciding whether to continue.
		for !maskEmpty(ws.hostMask) {
			if err := ctx.LaunchFunc(relax, grid, block); err != nil {
				return err
			}
			if err := ctx.LaunchFunc(commit, grid, block); err != nil {
				return err
			}
			if err := ctx.Synchronize(); err != nil {
				return err
			}
			if err := ws.readMask(); err != nil {
				return err
			}
		}

		// Copy the converged cost vector into the query's output row
		row := out[i*vc : (i+1)*vc]
		if err := ctx.Memcpy(row, ws.cost, vc*4, MemcpyDeviceToHost); err != nil {
			return err
		}
	}

	return nil
}

// checkRunArgs validates the caller contract shared by all entry points.
// Violations are fatal configuration errors.
func checkRunArgs(g *Graph, sources []int32, out []float32) error {
	if g == nil {
		return ErrNilGraph
	}
	if len(out) != len(sources)*g.VertexCount() {
		return ErrSizeMismatch
	}
	for i, s := range sources {
		if !g.validSource(s) {
			return NewConfigError("Run",
				fmt.Sprintf("source %d is out-of-range vertex %d", i, s))
		}
	}
	return nil
}
