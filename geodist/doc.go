// Package geodist measures the straight-line separation of two nearby points
// inside the Earth.
//
// Each point is projected to Cartesian space on a sphere of radius
// EarthRadius − depth, with the geographic latitude first converted to
// geocentric latitude through the Earth flattening factor. The reported
// distance is the Euclidean norm of the chord between the two projections,
// an adequate stand-in for ray-segment length at grid-gap scales.
//
// Longitudes are measured relative to a per-pair shift longitude placed 90°
// before the midpoint of the short arc between the endpoints (after mapping
// negative longitudes to [180, 360)). Centering the pair in the 180° window
// that starts at the shift longitude keeps both endpoints inside one
// continuous arc, which neutralizes the numerical cancellation that raw
// coordinates suffer near the antimeridian.
package geodist
