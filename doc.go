// Package frontier computes batches of single-source shortest-path (SSSP)
// queries over a static, non-negatively weighted CSR graph using
// frontier-based parallel relaxation on one or more simulated compute
// devices.
//
// The algorithm replaces Dijkstra's sequential priority queue with a
// vertex-parallel fixed-point iteration: every active vertex relaxes its
// outgoing edges (phase 1), improved costs are committed and the next
// frontier is built (phase 2), and the per-query loop terminates when the
// frontier empties. Independent queries in a batch are statically
// partitioned across the available devices and merged in input order.
//
// Example usage:
//
//	g, _ := frontier.NewGraph(vertexArray, edgeArray, weightArray)
//	out := make([]float32, len(sources)*g.VertexCount())
//
//	devices := frontier.EnumerateDevices()
//	if err := frontier.RunMultiDevice(g, sources, out, devices); err != nil {
//		log.Fatal(err)
//	}
//
// RunReference computes the same result on a single goroutine and serves as
// the correctness oracle and the no-device fallback.
package frontier
