package frontier

// Deterministic graph generators for tests and benchmarks. All generators
// use a linear congruential generator (LCG) so tests are reproducible
// across runs.

// lcg advances the generator state.
func lcg(state uint64) uint64 {
	return state*1103515245 + 12345 // LCG parameters from Numerical Recipes
}

// GenerateGraph builds a deterministic random CSR graph with vertexCount
// vertices, degree outgoing edges per vertex, and weights in [0.1, 10).
//
// Example:
//
//	g := GenerateGraph(1000, 8, 12345)
func GenerateGraph(vertexCount, degree int, seed uint64) *Graph {
	vertexArray := make([]int32, vertexCount)
	edgeArray := make([]int32, 0, vertexCount*degree)
	weightArray := make([]float32, 0, vertexCount*degree)

	rng := seed
	for v := 0; v < vertexCount; v++ {
		vertexArray[v] = int32(len(edgeArray))
		for e := 0; e < degree; e++ {
			rng = lcg(rng)
			target := int32(rng % uint64(vertexCount))
			rng = lcg(rng)
			weight := 0.1 + float32(rng%1000)/101.0
			edgeArray = append(edgeArray, target)
			weightArray = append(weightArray, weight)
		}
	}

	g, err := NewGraph(vertexArray, edgeArray, weightArray)
	if err != nil {
		panic("GenerateGraph produced an invalid graph: " + err.Error())
	}
	return g
}

// GenerateGridGraph builds a deterministic side x side grid with
// right/down edges and weights in [0.1, 10). Grid graphs exercise long
// shortest-path chains, so convergence takes many iterations.
func GenerateGridGraph(side int, seed uint64) *Graph {
	vertexCount := side * side
	vertexArray := make([]int32, vertexCount)
	var edgeArray []int32
	var weightArray []float32

	rng := seed
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			v := row*side + col
			vertexArray[v] = int32(len(edgeArray))
			if col+1 < side {
				rng = lcg(rng)
				edgeArray = append(edgeArray, int32(v+1))
				weightArray = append(weightArray, 0.1+float32(rng%1000)/101.0)
			}
			if row+1 < side {
				rng = lcg(rng)
				edgeArray = append(edgeArray, int32(v+side))
				weightArray = append(weightArray, 0.1+float32(rng%1000)/101.0)
			}
		}
	}

	g, err := NewGraph(vertexArray, edgeArray, weightArray)
	if err != nil {
		panic("GenerateGridGraph produced an invalid graph: " + err.Error())
	}
	return g
}

// TriangleGraph is the three-vertex example: edges 0→1 (w=1), 1→2 (w=2),
// 0→2 (w=4). From source 0 the costs are [0, 1, 3] since the two-hop path
// beats the direct edge.
func TriangleGraph() *Graph {
	g, err := NewGraph(
		[]int32{0, 2, 3},
		[]int32{1, 2, 2},
		[]float32{1, 4, 2},
	)
	if err != nil {
		panic("TriangleGraph is invalid: " + err.Error())
	}
	return g
}

// GenerateSources builds a deterministic batch of numResults valid source
// vertices for a graph with vertexCount vertices.
func GenerateSources(numResults, vertexCount int, seed uint64) []int32 {
	sources := make([]int32, numResults)
	rng := seed
	for i := range sources {
		rng = lcg(rng)
		sources[i] = int32(rng % uint64(vertexCount))
	}
	return sources
}

// TestGraphSizes returns common (vertexCount, degree) pairs for
// cross-checking the engines at several scales.
func TestGraphSizes() [][2]int {
	return [][2]int{
		{1, 0},    // Single vertex
		{8, 2},    // Tiny
		{64, 4},   // Small
		{256, 8},  // Medium
		{1024, 8}, // Large-ish
	}
}
