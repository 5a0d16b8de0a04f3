// Package normgrid defines the grid types, stage constants, and sentinel
// errors shared by every component that addresses the normalized grid.
package normgrid

import "errors"

// Sentinel errors for grid operations.
var (
	// ErrOutOfRange indicates a coordinate outside the admitted geographic
	// bounds: longitude [-180, 180], latitude [-90, 90], depth ≥ -10 km.
	ErrOutOfRange = errors.New("normgrid: location out of range")

	// ErrBadStage indicates a Stage value other than StageCoarse or StageFine.
	ErrBadStage = errors.New("normgrid: invalid stage")

	// ErrBadIndex indicates an index that does not name a grid point
	// (negative, or outside the axis cardinalities of the stage).
	ErrBadIndex = errors.New("normgrid: index out of range")

	// ErrBadRefine indicates a refinement factor that does not evenly divide
	// the coarse grid gaps.
	ErrBadRefine = errors.New("normgrid: refinement factor must evenly divide coarse gaps")
)

// Stage selects the grid resolution of the two-stage search.
type Stage int

const (
	// StageCoarse is the global sweep resolution: (0.01°, 0.01°, 1 km).
	StageCoarse Stage = 1

	// StageFine is the corridor sweep resolution: the coarse gaps divided by
	// the grid's refinement factor.
	StageFine Stage = 2
)

// Valid reports whether s names one of the two defined stages.
func (s Stage) Valid() bool { return s == StageCoarse || s == StageFine }

// String implements fmt.Stringer for diagnostics.
func (s Stage) String() string {
	switch s {
	case StageCoarse:
		return "coarse"
	case StageFine:
		return "fine"
	default:
		return "invalid"
	}
}

// Location is a geographic point: longitude and latitude in decimal degrees,
// depth in kilometres below sea level (negative up to -10 for relief).
type Location struct {
	Lon float64
	Lat float64
	Dep float64
}

// Gap holds the per-axis grid spacing of one stage: degrees for Lon and Lat,
// kilometres for Dep.
type Gap struct {
	Lon float64
	Lat float64
	Dep float64
}

// DefaultRefine is the refinement factor between the coarse and fine grids
// in the reference configuration.
const DefaultRefine = 4

// Geographic bounds of the admitted region.
const (
	MinLon = -180.0
	MaxLon = 180.0
	MinLat = -90.0
	MaxLat = 90.0
	MinDep = -10.0
)
