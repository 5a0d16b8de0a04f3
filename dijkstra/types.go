package dijkstra

import (
	"errors"
	"math"
)

// Sentinel errors returned by the solver and the file codec.
var (
	// ErrNoVertices indicates a graph with zero vertices.
	ErrNoVertices = errors.New("dijkstra: graph has no vertices")

	// ErrBadVertex indicates a source, sink, or edge endpoint outside
	// 0..numVertices-1.
	ErrBadVertex = errors.New("dijkstra: vertex slot out of range")

	// ErrNegativeWeight indicates a negative (or NaN) edge weight.
	ErrNegativeWeight = errors.New("dijkstra: edge weights must be non-negative")

	// ErrUnreachable indicates no path exists from source to sink.
	ErrUnreachable = errors.New("dijkstra: sink unreachable from source")

	// ErrMalformedEdgeFile indicates an edge file that does not follow the
	// "<n>, <sink>" / "<u>, <v>, <w>" layout.
	ErrMalformedEdgeFile = errors.New("dijkstra: malformed edge file")

	// ErrMalformedResult indicates engine output that is not the expected
	// JSON document.
	ErrMalformedResult = errors.New("dijkstra: malformed engine result")

	// ErrExternalFailure indicates the external engine exited non-zero.
	ErrExternalFailure = errors.New("dijkstra: external engine failed")
)

// Edge is one undirected edge between two vertex slots.
type Edge struct {
	U int
	V int
	W float64
}

// Result is the triple every engine, in-process or external, returns.
type Result struct {
	// ShortestWeight is the travel time from source to sink.
	ShortestWeight float64

	// ShortestPath lists vertex slots from the sink back to the source.
	ShortestPath []int

	// VertexWeights holds the shortest distance from the source per slot,
	// +Inf where unreachable.
	VertexWeights []float64
}

// Solver is a shortest-path engine over a slot-numbered undirected graph.
type Solver interface {
	Solve(edges []Edge, numVertices, source, sink int) (*Result, error)
}

// Options configures a Solve run.
type Options struct {
	// MaxDistance stops exploration beyond this distance from the source.
	// Default +Inf: explore everything reachable.
	MaxDistance float64

	// InfEdgeThreshold treats edges with weight ≥ this value as impassable.
	// Default +Inf: no edge is a wall.
	InfEdgeThreshold float64
}

// Option is a functional option for InProcess.
type Option func(*Options)

// WithMaxDistance caps the explored distance. Must be non-negative.
func WithMaxDistance(maxDist float64) Option {
	return func(o *Options) {
		if maxDist < 0 {
			panic("dijkstra: MaxDistance must be non-negative")
		}
		o.MaxDistance = maxDist
	}
}

// WithInfEdgeThreshold treats edges at or above the threshold as walls.
// Must be positive.
func WithInfEdgeThreshold(threshold float64) Option {
	return func(o *Options) {
		if threshold <= 0 {
			panic("dijkstra: InfEdgeThreshold must be positive")
		}
		o.InfEdgeThreshold = threshold
	}
}

// DefaultOptions returns the unconstrained configuration.
func DefaultOptions() Options {
	return Options{
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: math.Inf(1),
	}
}
