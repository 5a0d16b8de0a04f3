package geomodel_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/dinextw/traveltime/geomodel"
	"github.com/dinextw/traveltime/normgrid"
)

// smallModel is a 3×3×3 grid around Taiwan with speeds that increase
// linearly in depth: v = 4 + 0.1·dep. Trilinear interpolation is exact on
// multilinear fields, which makes expected values easy to state.
const smallModel = `0 0 3 3 3
119.0 120.0 121.0
22.0 23.0 24.0
-10.0 0.0 50.0
3.0 3.0 3.0
3.0 3.0 3.0
3.0 3.0 3.0
4.0 4.0 4.0
4.0 4.0 4.0
4.0 4.0 4.0
9.0 9.0 9.0
9.0 9.0 9.0
9.0 9.0 9.0
`

func parseSmall(t *testing.T) *geomodel.Model {
	t.Helper()
	m, err := geomodel.Parse(strings.NewReader(smallModel))
	require.NoError(t, err)

	return m
}

func TestParse_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MOD_H13")
	require.NoError(t, os.WriteFile(path, []byte(smallModel), 0o644))

	m, err := geomodel.Load(path)
	require.NoError(t, err)

	v, err := m.Speed(normgrid.Location{Lon: 120, Lat: 23, Dep: 0})
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := geomodel.Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSpeed_GridPointsReproduceStoredValues(t *testing.T) {
	m := parseSmall(t)

	cases := []struct {
		loc  normgrid.Location
		want float64
	}{
		{normgrid.Location{Lon: 119, Lat: 22, Dep: -10}, 3.0},
		{normgrid.Location{Lon: 121, Lat: 24, Dep: -10}, 3.0},
		{normgrid.Location{Lon: 120, Lat: 23, Dep: 0}, 4.0},
		{normgrid.Location{Lon: 121, Lat: 24, Dep: 50}, 9.0},
	}
	for _, tc := range cases {
		v, err := m.Speed(tc.loc)
		require.NoError(t, err)
		assert.True(t, scalar.EqualWithinAbs(v, tc.want, 1e-12),
			"loc=%+v got %v want %v", tc.loc, v, tc.want)
	}
}

func TestSpeed_TrilinearBetweenTicks(t *testing.T) {
	m := parseSmall(t)

	// Depth 25 is halfway through the [0, 50] cell: (4+9)/2.
	v, err := m.Speed(normgrid.Location{Lon: 120.5, Lat: 23.5, Dep: 25})
	require.NoError(t, err)
	assert.True(t, scalar.EqualWithinAbs(v, 6.5, 1e-12), "got %v", v)

	// Depth -5 is halfway through the [-10, 0] cell: (3+4)/2.
	v, err = m.Speed(normgrid.Location{Lon: 119.25, Lat: 22.75, Dep: -5})
	require.NoError(t, err)
	assert.True(t, scalar.EqualWithinAbs(v, 3.5, 1e-12), "got %v", v)
}

func TestSpeed_AxisSpanEdges(t *testing.T) {
	m := parseSmall(t)

	// Exactly on the upper span edge is still inside the model.
	v, err := m.Speed(normgrid.Location{Lon: 121, Lat: 24, Dep: 50})
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	// Just past any span edge is out of model.
	for _, loc := range []normgrid.Location{
		{Lon: 121.0001, Lat: 23, Dep: 0},
		{Lon: 118.9999, Lat: 23, Dep: 0},
		{Lon: 120, Lat: 24.0001, Dep: 0},
		{Lon: 120, Lat: 23, Dep: 50.0001},
		{Lon: 0, Lat: 0, Dep: 0},
	} {
		_, err := m.Speed(loc)
		assert.ErrorIs(t, err, geomodel.ErrOutOfModel, "loc=%+v", loc)
	}
}

func TestSpeed_DuplicateTickCollapses(t *testing.T) {
	// The depth axis carries a duplicated tick at 0. Right-binary-search
	// places dep 0 in the cell starting at the second copy (index 1, the
	// [0, 10] cell), so the zero-width cell is never divided through and the
	// second copy's row (6.0) is returned.
	const dup = `0 0 2 2 3
119.0 121.0
22.0 24.0
0.0 0.0 10.0
5.0 5.0
5.0 5.0
6.0 6.0
6.0 6.0
8.0 8.0
8.0 8.0
`
	m, err := geomodel.Parse(strings.NewReader(dup))
	require.NoError(t, err)

	v, err := m.Speed(normgrid.Location{Lon: 120, Lat: 23, Dep: 0})
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{
			name: "short header",
			text: "0 0 2\n",
			want: geomodel.ErrMalformed,
		},
		{
			name: "axis cardinality mismatch",
			text: "0 0 3 2 2\n119.0 120.0\n22.0 24.0\n0.0 10.0\n",
			want: geomodel.ErrMalformed,
		},
		{
			name: "short speed row",
			text: "0 0 2 1 1\n119.0 121.0\n22.0\n0.0\n5.0\n",
			want: geomodel.ErrMalformed,
		},
		{
			name: "missing speed rows",
			text: "0 0 2 2 2\n119.0 121.0\n22.0 24.0\n0.0 10.0\n5.0 5.0\n",
			want: geomodel.ErrMalformed,
		},
		{
			name: "non-numeric field",
			text: "0 0 2 1 1\n119.0 abc\n22.0\n0.0\n5.0 5.0\n",
			want: geomodel.ErrMalformed,
		},
		{
			name: "unsorted axis",
			text: "0 0 2 1 1\n121.0 119.0\n22.0\n0.0\n5.0 5.0\n",
			want: geomodel.ErrBadAxis,
		},
		{
			name: "negative speed",
			text: "0 0 2 1 1\n119.0 121.0\n22.0\n0.0\n5.0 -1.0\n",
			want: geomodel.ErrBadSpeed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := geomodel.Parse(strings.NewReader(tc.text))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
