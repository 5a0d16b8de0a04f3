package geomodel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dinextw/traveltime/normgrid"
)

// Model is an immutable gridded velocity model. Axis ticks are monotone
// non-decreasing; speeds are stored longitude-fastest, then latitude, then
// depth, matching the file layout.
type Model struct {
	lons   []float64
	lats   []float64
	deps   []float64
	speeds []float64 // len = len(lons)·len(lats)·len(deps)
}

// Load reads and validates a velocity model from path.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geomodel: opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	return m, nil
}

// Parse reads a velocity model from r. See the package documentation for
// the file layout.
func Parse(r io.Reader) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	header, err := scanFloats(sc, "header")
	if err != nil {
		return nil, err
	}
	if len(header) != 5 {
		return nil, fmt.Errorf("%w: header needs 5 fields, got %d", ErrMalformed, len(header))
	}
	numLon, numLat, numDep := int(header[2]), int(header[3]), int(header[4])
	if numLon < 1 || numLat < 1 || numDep < 1 {
		return nil, fmt.Errorf("%w: non-positive axis cardinality", ErrMalformed)
	}

	lons, err := scanAxis(sc, "longitude", numLon)
	if err != nil {
		return nil, err
	}
	lats, err := scanAxis(sc, "latitude", numLat)
	if err != nil {
		return nil, err
	}
	deps, err := scanAxis(sc, "depth", numDep)
	if err != nil {
		return nil, err
	}

	speeds := make([]float64, 0, numLon*numLat*numDep)
	for d := 0; d < numDep; d++ {
		for a := 0; a < numLat; a++ {
			row, err := scanFloats(sc, "speed row")
			if err != nil {
				return nil, err
			}
			if len(row) != numLon {
				return nil, fmt.Errorf("%w: speed row at dep=%d lat=%d has %d fields, want %d",
					ErrMalformed, d, a, len(row), numLon)
			}
			for _, v := range row {
				if v < 0 {
					return nil, fmt.Errorf("%w: %v at dep=%d lat=%d", ErrBadSpeed, v, d, a)
				}
			}
			speeds = append(speeds, row...)
		}
	}

	return &Model{lons: lons, lats: lats, deps: deps, speeds: speeds}, nil
}

// scanFloats reads the next non-empty line and parses every field.
func scanFloats(sc *bufio.Scanner, what string) ([]float64, error) {
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		vals := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad %s field %q", ErrMalformed, what, f)
			}
			vals[i] = v
		}

		return vals, nil
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrMalformed, what, err)
	}

	return nil, fmt.Errorf("%w: missing %s", ErrMalformed, what)
}

// scanAxis reads one axis line and checks cardinality and monotonicity.
func scanAxis(sc *bufio.Scanner, what string, want int) ([]float64, error) {
	vals, err := scanFloats(sc, what)
	if err != nil {
		return nil, err
	}
	if len(vals) != want {
		return nil, fmt.Errorf("%w: %s axis has %d ticks, want %d", ErrMalformed, what, len(vals), want)
	}
	if !sort.Float64sAreSorted(vals) {
		return nil, fmt.Errorf("%w: %s", ErrBadAxis, what)
	}

	return vals, nil
}

// at returns the stored speed at the given axis indices.
func (m *Model) at(iLon, iLat, iDep int) float64 {
	return m.speeds[(iDep*len(m.lats)+iLat)*len(m.lons)+iLon]
}

// Speed returns the interpolated speed in km/s at loc.
// Returns ErrOutOfModel when any coordinate falls outside its axis span.
func (m *Model) Speed(loc normgrid.Location) (float64, error) {
	iLon, tLon, err := locate(m.lons, loc.Lon)
	if err != nil {
		return 0, fmt.Errorf("%w: lon=%v", err, loc.Lon)
	}
	iLat, tLat, err := locate(m.lats, loc.Lat)
	if err != nil {
		return 0, fmt.Errorf("%w: lat=%v", err, loc.Lat)
	}
	iDep, tDep, err := locate(m.deps, loc.Dep)
	if err != nil {
		return 0, fmt.Errorf("%w: dep=%v", err, loc.Dep)
	}

	speed := 0.0
	for c := 0; c < 8; c++ {
		cLon, cLat, cDep := c&1, (c>>1)&1, (c>>2)&1
		w := blend(cLon, tLon) * blend(cLat, tLat) * blend(cDep, tDep)
		if w == 0 {
			continue
		}
		speed += w * m.at(iLon+cLon*step(m.lons, iLon), iLat+cLat*step(m.lats, iLat), iDep+cDep*step(m.deps, iDep))
	}

	return speed, nil
}

// blend returns the 1-D interpolation weight for corner c at fraction t.
func blend(c int, t float64) float64 {
	if c == 1 {
		return t
	}

	return 1 - t
}

// step reports whether the axis has an upper cell corner after i.
func step(axis []float64, i int) int {
	if i+1 < len(axis) {
		return 1
	}

	return 0
}

// locate finds the enclosing cell on one axis: the right-binary-search
// index of x minus one, clamped so the upper corner stays in range, and the
// axis-proportional fraction t of x within the cell. A zero-width cell
// (duplicate ticks, or a single-tick axis) collapses to t = 0.
func locate(axis []float64, x float64) (int, float64, error) {
	if x < axis[0] || x > axis[len(axis)-1] {
		return 0, 0, ErrOutOfModel
	}
	// bisect_right: first index whose tick exceeds x.
	i := sort.Search(len(axis), func(i int) bool { return axis[i] > x }) - 1
	if i > len(axis)-2 {
		i = len(axis) - 2
	}
	if i < 0 {
		i = 0
	}
	if i+1 >= len(axis) {
		return i, 0, nil
	}
	den := axis[i+1] - axis[i]
	if den == 0 {
		return i, 0, nil
	}

	return i, (x - axis[i]) / den, nil
}
