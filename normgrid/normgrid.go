package normgrid

import (
	"fmt"
	"math"
	"sync"
)

// microPerUnit is the fixed-point scale: one micro-unit is 1e-6 degree (lon,
// lat) or 1e-6 km (depth). All snapping and index algebra happens on integer
// micro-units so half-gap boundaries round deterministically half-up instead
// of drifting on binary float error.
const microPerUnit = 1_000_000

// Coarse grid gaps in micro-units.
const (
	coarseGapLonMicro = 10_000    // 0.01°
	coarseGapLatMicro = 10_000    // 0.01°
	coarseGapDepMicro = 1_000_000 // 1 km
)

// Axis spans in micro-units.
const (
	spanLonMicro = 360 * microPerUnit // [-180, 180]
	spanLatMicro = 180 * microPerUnit // [-90, 90]
	offLonMicro  = 180 * microPerUnit
	offLatMicro  = 90 * microPerUnit
	offDepMicro  = 10 * microPerUnit // depth axis starts at -10 km
)

// stageSpec holds the precomputed per-stage constants.
type stageSpec struct {
	gapLon int64 // micro-units per grid step, longitude
	gapLat int64
	gapDep int64
	numLon int64 // axis cardinality: span/gap + 1
	numLat int64
}

// Grid is the immutable grid configuration. It precomputes both stage specs
// at construction; every method is read-only and safe for concurrent use.
type Grid struct {
	refine int
	coarse stageSpec
	fine   stageSpec
}

// New constructs a Grid whose fine stage divides each coarse gap by refine.
// Returns ErrBadRefine unless refine ≥ 1 and every coarse gap is an integer
// multiple of it in micro-units.
func New(refine int) (*Grid, error) {
	if refine < 1 {
		return nil, fmt.Errorf("%w: refine=%d", ErrBadRefine, refine)
	}
	r := int64(refine)
	if coarseGapLonMicro%r != 0 || coarseGapLatMicro%r != 0 || coarseGapDepMicro%r != 0 {
		return nil, fmt.Errorf("%w: refine=%d", ErrBadRefine, refine)
	}
	g := &Grid{
		refine: refine,
		coarse: newStageSpec(coarseGapLonMicro, coarseGapLatMicro, coarseGapDepMicro),
		fine:   newStageSpec(coarseGapLonMicro/r, coarseGapLatMicro/r, coarseGapDepMicro/r),
	}

	return g, nil
}

func newStageSpec(gapLon, gapLat, gapDep int64) stageSpec {
	return stageSpec{
		gapLon: gapLon,
		gapLat: gapLat,
		gapDep: gapDep,
		numLon: spanLonMicro/gapLon + 1,
		numLat: spanLatMicro/gapLat + 1,
	}
}

var defaultGrid = sync.OnceValue(func() *Grid {
	g, err := New(DefaultRefine)
	if err != nil {
		panic(err) // DefaultRefine is a compile-time constant; cannot fail
	}

	return g
})

// Default returns the process-wide Grid with the reference refinement
// factor. The instance is constructed once and shared; it is immutable.
func Default() *Grid { return defaultGrid() }

// Refine returns the integer refinement factor between the two stages.
func (g *Grid) Refine() int { return g.refine }

// spec resolves the per-stage constants, rejecting unknown stages.
func (g *Grid) spec(stage Stage) (stageSpec, error) {
	switch stage {
	case StageCoarse:
		return g.coarse, nil
	case StageFine:
		return g.fine, nil
	default:
		return stageSpec{}, fmt.Errorf("%w: %d", ErrBadStage, int(stage))
	}
}

// GridGap returns the per-axis spacing of the stage in degrees and km.
func (g *Grid) GridGap(stage Stage) (Gap, error) {
	s, err := g.spec(stage)
	if err != nil {
		return Gap{}, err
	}

	return Gap{
		Lon: float64(s.gapLon) / microPerUnit,
		Lat: float64(s.gapLat) / microPerUnit,
		Dep: float64(s.gapDep) / microPerUnit,
	}, nil
}

// NumLonIndex returns the longitude axis cardinality Nl = 360/gap + 1.
func (g *Grid) NumLonIndex(stage Stage) (int64, error) {
	s, err := g.spec(stage)
	if err != nil {
		return 0, err
	}

	return s.numLon, nil
}

// NumLatIndex returns the latitude axis cardinality Na = 180/gap + 1.
func (g *Grid) NumLatIndex(stage Stage) (int64, error) {
	s, err := g.spec(stage)
	if err != nil {
		return 0, err
	}

	return s.numLat, nil
}

// snapMicro validates bounds and returns the snapped coordinates in
// micro-units. It is the single source of truth for both Snap and NormIndex.
func (g *Grid) snapMicro(loc Location, stage Stage) (lon, lat, dep int64, err error) {
	s, err := g.spec(stage)
	if err != nil {
		return 0, 0, 0, err
	}
	if loc.Lon < MinLon || loc.Lon > MaxLon {
		return 0, 0, 0, fmt.Errorf("%w: lon=%v", ErrOutOfRange, loc.Lon)
	}
	if loc.Lat < MinLat || loc.Lat > MaxLat {
		return 0, 0, 0, fmt.Errorf("%w: lat=%v", ErrOutOfRange, loc.Lat)
	}
	if loc.Dep < MinDep {
		return 0, 0, 0, fmt.Errorf("%w: dep=%v", ErrOutOfRange, loc.Dep)
	}
	lon = roundHalfUp(toMicro(loc.Lon), s.gapLon)
	lat = roundHalfUp(toMicro(loc.Lat), s.gapLat)
	dep = roundHalfUp(toMicro(loc.Dep), s.gapDep)
	// Half-up rounding can push a coordinate sitting exactly on the upper
	// bound past it only when the bound itself is not a grid tick; the
	// admitted bounds are always ticks, so clamping is unnecessary.

	return lon, lat, dep, nil
}

// Snap rounds loc half-up to the stage's grid, per axis.
// Returns ErrOutOfRange if any axis violates the admitted bounds.
func (g *Grid) Snap(loc Location, stage Stage) (Location, error) {
	lon, lat, dep, err := g.snapMicro(loc, stage)
	if err != nil {
		return Location{}, err
	}

	return Location{
		Lon: fromMicro(lon),
		Lat: fromMicro(lat),
		Dep: fromMicro(dep),
	}, nil
}

// NormIndex snaps loc to the stage's grid and returns its dense index.
// Longitude varies fastest, then latitude, then depth.
func (g *Grid) NormIndex(loc Location, stage Stage) (int64, error) {
	lon, lat, dep, err := g.snapMicro(loc, stage)
	if err != nil {
		return 0, err
	}
	s, _ := g.spec(stage)
	iLon := (lon + offLonMicro) / s.gapLon
	iLat := (lat + offLatMicro) / s.gapLat
	iDep := (dep + offDepMicro) / s.gapDep

	return iDep*s.numLon*s.numLat + iLat*s.numLon + iLon, nil
}

// Recover inverts NormIndex: it returns the snapped location named by idx.
// Round-trip law: Recover(NormIndex(loc, s), s) == Snap(loc, s).
func (g *Grid) Recover(idx int64, stage Stage) (Location, error) {
	s, err := g.spec(stage)
	if err != nil {
		return Location{}, err
	}
	if idx < 0 {
		return Location{}, fmt.Errorf("%w: %d", ErrBadIndex, idx)
	}
	plane := s.numLon * s.numLat
	iDep := idx / plane
	rem := idx % plane
	iLat := rem / s.numLon
	iLon := rem % s.numLon

	return Location{
		Lon: fromMicro(iLon*s.gapLon - offLonMicro),
		Lat: fromMicro(iLat*s.gapLat - offLatMicro),
		Dep: fromMicro(iDep*s.gapDep - offDepMicro),
	}, nil
}

// toMicro converts a coordinate to integer micro-units. math.Round here is
// exact for our purposes: the binary error of any in-range float64 is orders
// of magnitude below half a micro-unit, so the nearest micro tick is the
// decimally correct one.
func toMicro(v float64) int64 { return int64(math.Round(v * microPerUnit)) }

// fromMicro converts micro-units back to a float coordinate.
func fromMicro(m int64) float64 { return float64(m) / microPerUnit }

// roundHalfUp rounds m to the nearest multiple of gap, ties away from the
// lower multiple (half-up), using only integer arithmetic.
func roundHalfUp(m, gap int64) int64 {
	return floorDiv(2*m+gap, 2*gap) * gap
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
