// Package frontier reference implementation for verification and fallback
package frontier

// Reference contains the simple, correct implementation of the relaxation
// algorithm, executed on a single goroutine with no parallel writes. It is
// the correctness oracle for the device engines and the fallback when no
// device is present.
type Reference struct{}

// SSSP fills cost with the shortest distances from source to every vertex,
// reusing the supplied scratch arrays. All four slices must have
// g.VertexCount() elements.
func (r Reference) SSSP(g *Graph, source int32, cost, updating []float32, mask []int32) {
	vertexCount := g.VertexCount()

	for v := 0; v < vertexCount; v++ {
		if int32(v) == source {
			mask[v] = 1
			cost[v] = 0
			updating[v] = 0
		} else {
			mask[v] = 0
			cost[v] = InfiniteCost
			updating[v] = InfiniteCost
		}
	}

	for !maskEmpty(mask) {
		// Phase 1: frontier vertices relax their outgoing edges
		for tid := 0; tid < vertexCount; tid++ {
			if mask[tid] == 0 {
				continue
			}
			mask[tid] = 0

			edgeStart, edgeEnd := g.EdgeRange(tid)
			for edge := edgeStart; edge < edgeEnd; edge++ {
				nid := g.edgeArray[edge]
				// Weights are indexed by edge, not by destination vertex
				if updating[nid] > cost[tid]+g.weightArray[edge] {
					updating[nid] = cost[tid] + g.weightArray[edge]
				}
			}
		}

		// Phase 2: commit improved costs and rebuild the frontier
		for tid := 0; tid < vertexCount; tid++ {
			if cost[tid] > updating[tid] {
				cost[tid] = updating[tid]
				mask[tid] = 1
			}
			updating[tid] = cost[tid]
		}
	}
}

// RunReference computes the shortest-path costs for every query in sources
// on the control processor. It produces the same results as the device
// engines and shares their caller contract: out must hold
// len(sources) * g.VertexCount() elements.
func RunReference(g *Graph, sources []int32, out []float32) error {
	if err := checkRunArgs(g, sources, out); err != nil {
		return err
	}

	vc := g.VertexCount()
	cost := make([]float32, vc)
	updating := make([]float32, vc)
	mask := make([]int32, vc)

	var ref Reference
	for i, source := range sources {
		ref.SSSP(g, source, cost, updating, mask)
		copy(out[i*vc:(i+1)*vc], cost)
	}

	return nil
}
