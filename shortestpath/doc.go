// Package shortestpath drives the two-stage travel-time computation.
//
// A Run walks the state machine
//
//	Idle → BuiltCoarse → RanCoarse → BuiltFine → RanFine → Done
//
// building the coarse corridor graph, solving it, rebuilding a fine graph
// inside a tube around the coarse ray path, and solving again. Any stage
// error resets the driver to Idle with no partial results visible.
//
// For each solve the driver materializes a contiguous vertex numbering from
// the edge set's grid indices, with the station's index at slot 0 and the
// source's slot as the sink. After the fine solve it exposes the travel
// time in seconds, the ray path ordered from station to source, and the
// per-vertex shortest distances keyed by fine-stage grid index (the payload
// the travel-time store persists).
package shortestpath
