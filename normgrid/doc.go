// Package normgrid maps geographic locations onto a fixed regular grid and
// assigns every grid point a dense 64-bit index.
//
// The grid covers longitude [-180, 180]°, latitude [-90, 90]°, and depth
// [-10, +∞) km (positive down; the -10 km headroom admits surface relief).
// Two resolutions exist, selected by Stage:
//
//   - StageCoarse: gaps (0.01°, 0.01°, 1 km)
//   - StageFine:   the coarse gaps divided by an integer refinement factor
//     (4 in the default configuration, giving 0.0025° and 0.25 km)
//
// For a stage with gaps (gl, ga, gd) and axis cardinalities
// Nl = 360/gl + 1, Na = 180/ga + 1, a grid-snapped location (λ, φ, δ) has
//
//	index = ((δ+10)/gd)·Nl·Na + ((φ+90)/ga)·Nl + ((λ+180)/gl)
//
// so longitude is the fastest-varying axis, then latitude, then depth.
// The map between snapped locations and indices is bijective, and
// Recover(NormIndex(loc)) == Snap(loc) for every in-range location.
//
// Snapping rounds half-up at the stage's resolution using integer
// fixed-point arithmetic (micro-units), so inputs lying exactly on a
// half-gap boundary (e.g. 120.005 on the 0.01° grid) round deterministically
// up instead of drifting on binary representation error.
//
// A Grid is immutable after construction and safe to share across
// goroutines. Callers that do not need a custom refinement factor should use
// the process-wide Default grid.
package normgrid
