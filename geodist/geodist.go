package geodist

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dinextw/traveltime/normgrid"
)

const (
	// EarthRadius is the reference radius in km used for edge scoring.
	EarthRadius = 6374.7524414062500

	// radPerDeg converts decimal degrees to radians.
	radPerDeg = 0.0174532925199432955

	// b2aSq is the squared polar-to-equatorial axis ratio (Earth flattening
	// factor) used to convert geographic to geocentric latitude.
	b2aSq = 0.993305521
)

// geocentricLat converts a geographic latitude (degrees) to geocentric
// latitude (degrees) on the flattened Earth.
func geocentricLat(lat float64) float64 {
	return math.Atan(b2aSq*math.Tan(lat*radPerDeg)) / radPerDeg
}

// cartesian projects loc onto Cartesian space on a sphere of radius
// radius − depth, with longitudes measured from shiftLon.
func cartesian(loc normgrid.Location, shiftLon, radius float64) r3.Vec {
	r2d := 90.0 / math.Asin(1.0)
	theta := (90.0 - geocentricLat(loc.Lat)) / r2d
	r := radius - loc.Dep

	return r3.Vec{
		X: r * math.Sin(theta) * math.Cos((loc.Lon-shiftLon)/r2d),
		Y: r * math.Sin(theta) * math.Sin((loc.Lon-shiftLon)/r2d),
		Z: r * math.Cos(theta),
	}
}

// Distance returns the chord length in km between p1 and p2, each projected
// to Cartesian space on a sphere of radius radius − depth. shiftLon should
// come from ShiftLon for the station–source pair being scored; any common
// origin gives the same answer in exact arithmetic, the shift only protects
// floating-point precision near the antimeridian.
func Distance(p1, p2 normgrid.Location, shiftLon, radius float64) float64 {
	return r3.Norm(r3.Sub(cartesian(p1, shiftLon, radius), cartesian(p2, shiftLon, radius)))
}

// ShiftLon selects the longitude origin for a station–source pair. Negative
// longitudes are first mapped to [180, 360); when the two are then more than
// 180° apart, the short arc is the one wrapping through 360°. The returned
// origin lies 90° before the midpoint of that short arc, so both endpoints
// land in the single continuous 180° window that starts at the origin,
// centered on the arc's midpoint.
func ShiftLon(station, source normgrid.Location) float64 {
	sta := station.Lon
	if sta < 0 {
		sta += 360.0
	}
	sou := source.Lon
	if sou < 0 {
		sou += 360.0
	}
	diff := math.Abs(sou - sta)
	low := math.Min(sta, sou)
	if diff <= 180.0 {
		return low - (180.0-diff)/2.0
	}
	diff = 360.0 - diff

	return low - (diff + (180.0-diff)/2.0)
}
