// Package dijkstra solves single-pair shortest paths on the dense
// slot-numbered graphs the travel-time driver produces.
//
// The graph arrives as a list of undirected edges over vertices numbered
// 0..n-1 (the driver places the station at slot 0). Solve runs Dijkstra
// from the source with a lazy-decrease-key binary heap: shorter distances
// push duplicate heap entries, stale entries are discarded when popped.
// Edge weights are non-negative float64 travel times.
//
// Solve returns the same triple the standalone engine binary reports:
//
//   - ShortestWeight: the travel time from source to sink
//   - ShortestPath:   slot numbers from the sink back to the source
//   - VertexWeights:  per-slot shortest distance from the source
//     (+Inf where unreachable)
//
// The package also implements the engine's file interface for
// interoperability: WriteEdgeFile/ReadEdgeFile speak the
// "<num_vertices>, <sink>" header plus "<u>, <v>, <weight>" rows, and
// External runs a standalone engine binary over such a file, decoding its
// JSON result (which may spell numbers as strings).
//
// Complexity: O((V + E) log V) time, O(V + E) space.
package dijkstra
