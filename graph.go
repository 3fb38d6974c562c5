package frontier

import (
	"fmt"
	"math"
)

// Graph is an immutable compressed-sparse-row (CSR) representation of a
// directed, non-negatively weighted graph.
//
// vertexArray[v] holds the offset of v's first outgoing edge in edgeArray;
// the range extends to vertexArray[v+1], or to edgeCount for the last
// vertex. edgeArray holds destination vertex ids. weightArray[e] is the
// weight of edgeArray[e]; weights are indexed by edge, not by destination
// vertex.
//
// A Graph is read-only after construction and is safe to share across
// concurrently running device workers.
type Graph struct {
	vertexArray []int32
	edgeArray   []int32
	weightArray []float32
}

// NewGraph constructs a Graph from caller-supplied CSR arrays. The arrays
// are copied so later mutation by the caller cannot be observed.
//
// Validation is fail-fast: offsets must be non-decreasing and within
// [0, edgeCount], every destination id must be in [0, vertexCount), and
// every weight must be finite and non-negative.
func NewGraph(vertexArray, edgeArray []int32, weightArray []float32) (*Graph, error) {
	if len(vertexArray) == 0 {
		return nil, NewConfigError("NewGraph", "vertex array is empty")
	}
	if len(edgeArray) != len(weightArray) {
		return nil, NewConfigError("NewGraph",
			fmt.Sprintf("edge array length %d does not match weight array length %d",
				len(edgeArray), len(weightArray)))
	}

	vertexCount := len(vertexArray)
	edgeCount := len(edgeArray)

	prev := int32(0)
	for v, off := range vertexArray {
		if off < prev || int(off) > edgeCount {
			return nil, NewConfigError("NewGraph",
				fmt.Sprintf("vertex %d has invalid edge offset %d", v, off))
		}
		prev = off
	}

	for e, nid := range edgeArray {
		if nid < 0 || int(nid) >= vertexCount {
			return nil, NewConfigError("NewGraph",
				fmt.Sprintf("edge %d targets out-of-range vertex %d", e, nid))
		}
	}

	for e, w := range weightArray {
		if w < 0 || math.IsNaN(float64(w)) || math.IsInf(float64(w), 0) {
			return nil, NewConfigError("NewGraph",
				fmt.Sprintf("edge %d has invalid weight %v", e, w))
		}
	}

	g := &Graph{
		vertexArray: append([]int32(nil), vertexArray...),
		edgeArray:   append([]int32(nil), edgeArray...),
		weightArray: append([]float32(nil), weightArray...),
	}
	return g, nil
}

// VertexCount returns the number of vertices in the graph.
func (g *Graph) VertexCount() int {
	return len(g.vertexArray)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edgeArray)
}

// EdgeRange returns the half-open range [start, end) of v's outgoing edges
// in the edge and weight arrays.
func (g *Graph) EdgeRange(v int) (start, end int) {
	start = int(g.vertexArray[v])
	if v+1 < len(g.vertexArray) {
		end = int(g.vertexArray[v+1])
	} else {
		end = len(g.edgeArray)
	}
	return start, end
}

// OutDegree returns the number of outgoing edges of v.
func (g *Graph) OutDegree(v int) int {
	start, end := g.EdgeRange(v)
	return end - start
}

// validSource reports whether s is a valid vertex index.
func (g *Graph) validSource(s int32) bool {
	return s >= 0 && int(s) < len(g.vertexArray)
}
