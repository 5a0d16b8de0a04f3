package geodist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/dinextw/traveltime/geodist"
	"github.com/dinextw/traveltime/normgrid"
)

func TestDistance_KnownPair(t *testing.T) {
	// One coarse grid diagonal near Taiwan: 0.01° in lon and lat, 1 km down.
	sta := normgrid.Location{Lon: 120, Lat: 23, Dep: 0}
	sou := normgrid.Location{Lon: 120.01, Lat: 23.01, Dep: 1}
	shift := geodist.ShiftLon(sta, sou)

	d := geodist.Distance(sta, sou, shift, geodist.EarthRadius)
	assert.True(t, scalar.EqualWithinAbs(d, 1.8102400491392043, 1e-9), "got %v", d)
}

func TestDistance_Symmetric(t *testing.T) {
	p := normgrid.Location{Lon: 121.7407, Lat: 24.428, Dep: -0.113}
	q := normgrid.Location{Lon: 121.86, Lat: 24.79, Dep: 7.5}
	shift := geodist.ShiftLon(p, q)

	assert.Equal(t,
		geodist.Distance(p, q, shift, geodist.EarthRadius),
		geodist.Distance(q, p, shift, geodist.EarthRadius),
	)
}

func TestDistance_CoincidentPoints(t *testing.T) {
	p := normgrid.Location{Lon: 120.5, Lat: 23.5, Dep: 10}
	shift := geodist.ShiftLon(p, p)

	assert.Zero(t, geodist.Distance(p, p, shift, geodist.EarthRadius))
}

func TestDistance_DepthOnly(t *testing.T) {
	// Two points differing only in depth are separated by exactly that depth.
	p := normgrid.Location{Lon: 120, Lat: 23, Dep: 0}
	q := normgrid.Location{Lon: 120, Lat: 23, Dep: 5}
	shift := geodist.ShiftLon(p, q)

	d := geodist.Distance(p, q, shift, geodist.EarthRadius)
	assert.True(t, scalar.EqualWithinAbs(d, 5.0, 1e-9), "got %v", d)
}

func TestShiftLon_DirectArc(t *testing.T) {
	sta := normgrid.Location{Lon: 120}
	sou := normgrid.Location{Lon: 120.01}

	assert.InDelta(t, 30.005, geodist.ShiftLon(sta, sou), 1e-9)
	// Order of the endpoints does not matter.
	assert.InDelta(t, 30.005, geodist.ShiftLon(sou, sta), 1e-9)
}

func TestShiftLon_Antimeridian(t *testing.T) {
	// 179.99°E and 179.99°W are 0.02° apart across the antimeridian; the
	// 180° window starting at the origin must cover the short arc, not the
	// 359.98° long way around.
	east := normgrid.Location{Lon: 179.99}
	west := normgrid.Location{Lon: -179.99}
	shift := geodist.ShiftLon(east, west)

	// Both endpoints mapped to [180, 360) land within 180° of the origin.
	for _, lon := range []float64{179.99, 360 - 179.99} {
		arc := lon - shift
		assert.GreaterOrEqual(t, arc, 0.0)
		assert.LessOrEqual(t, arc, 180.0)
	}

	// The centering keeps the chord finite and tiny: about 0.02° of arc.
	d := geodist.Distance(east, west, shift, geodist.EarthRadius)
	assert.InDelta(t, 2.225, d, 0.01)
}
