package shortestpath

import "errors"

// Sentinel errors for the driver.
var (
	// ErrNilGrid indicates a Driver constructed without a grid.
	ErrNilGrid = errors.New("shortestpath: grid is nil")

	// ErrNilBuilder indicates a Driver constructed without a graph builder.
	ErrNilBuilder = errors.New("shortestpath: graph builder is nil")

	// ErrNotRun indicates a result accessor called before a successful Run.
	ErrNotRun = errors.New("shortestpath: no completed computation")

	// ErrVertexMissing indicates the station or source grid point acquired
	// no edges; the corridor produced no usable graph around an endpoint.
	ErrVertexMissing = errors.New("shortestpath: endpoint vertex absent from graph")
)

// State names the driver's position in the two-stage run.
type State int

const (
	StateIdle State = iota
	StateBuiltCoarse
	StateRanCoarse
	StateBuiltFine
	StateRanFine
	StateDone
)

// String implements fmt.Stringer for diagnostics.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuiltCoarse:
		return "built-coarse"
	case StateRanCoarse:
		return "ran-coarse"
	case StateBuiltFine:
		return "built-fine"
	case StateRanFine:
		return "ran-fine"
	case StateDone:
		return "done"
	default:
		return "invalid"
	}
}
