package graphbuilder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinextw/traveltime/geomodel"
	"github.com/dinextw/traveltime/graphbuilder"
	"github.com/dinextw/traveltime/normgrid"
)

// uniformModel covers the Taiwan region with constant unit speed, so edge
// weights reduce to segment lengths in km.
const uniformModel = `0 0 3 3 3
119.0 120.5 122.0
22.0 23.5 25.0
-10.0 20.0 100.0
1.0 1.0 1.0
1.0 1.0 1.0
1.0 1.0 1.0
1.0 1.0 1.0
1.0 1.0 1.0
1.0 1.0 1.0
1.0 1.0 1.0
1.0 1.0 1.0
1.0 1.0 1.0
`

func uniformBuilder(t *testing.T, opts ...graphbuilder.Option) *graphbuilder.Builder {
	t.Helper()
	m, err := geomodel.Parse(strings.NewReader(uniformModel))
	require.NoError(t, err)
	b, err := graphbuilder.New(normgrid.Default(), m, opts...)
	require.NoError(t, err)

	return b
}

func TestNew_Validation(t *testing.T) {
	m, err := geomodel.Parse(strings.NewReader(uniformModel))
	require.NoError(t, err)

	_, err = graphbuilder.New(nil, m)
	assert.ErrorIs(t, err, graphbuilder.ErrNilGrid)

	_, err = graphbuilder.New(normgrid.Default(), nil)
	assert.ErrorIs(t, err, graphbuilder.ErrNilModel)
}

func TestBuild_InputValidation(t *testing.T) {
	b := uniformBuilder(t)
	sta := normgrid.Location{Lon: 120, Lat: 23, Dep: 0}
	sou := normgrid.Location{Lon: 120.01, Lat: 23.01, Dep: 1}

	_, err := b.Build(sta, sta, normgrid.StageCoarse, nil)
	assert.ErrorIs(t, err, graphbuilder.ErrSameLocation)

	_, err = b.Build(sta, sou, normgrid.Stage(9), nil)
	assert.ErrorIs(t, err, graphbuilder.ErrBadStage)

	_, err = b.Build(sta, sou, normgrid.StageCoarse, []normgrid.Location{sta})
	assert.ErrorIs(t, err, graphbuilder.ErrUnexpectedPath)

	_, err = b.Build(sta, sou, normgrid.StageFine, nil)
	assert.ErrorIs(t, err, graphbuilder.ErrEmptyPath)
}

func TestBuild_CoarseUnitCube(t *testing.T) {
	// A single coarse cell (2×2×2 vertices) with no padding: every unordered
	// corner pair is reachable by one neighbor offset, giving 28 edges.
	b := uniformBuilder(t, graphbuilder.WithExtraRange(0, 0, 0))
	sta := normgrid.Location{Lon: 120, Lat: 23, Dep: 0}
	sou := normgrid.Location{Lon: 120.01, Lat: 23.01, Dep: 1}

	edges, err := b.Build(sta, sou, normgrid.StageCoarse, nil)
	require.NoError(t, err)

	assert.Equal(t, 28, edges.Len())
	assert.Len(t, edges.Vertices(), 8)
}

func TestBuild_CoarseUnitCubeCorners(t *testing.T) {
	b := uniformBuilder(t, graphbuilder.WithExtraRange(0, 0, 0))
	sta := normgrid.Location{Lon: 120, Lat: 23, Dep: 0}
	sou := normgrid.Location{Lon: 120.01, Lat: 23.01, Dep: 1}

	edges, err := b.Build(sta, sou, normgrid.StageCoarse, nil)
	require.NoError(t, err)

	want := map[normgrid.Location]struct{}{
		{Lon: 120, Lat: 23, Dep: 0}:       {},
		{Lon: 120.01, Lat: 23, Dep: 0}:    {},
		{Lon: 120, Lat: 23.01, Dep: 0}:    {},
		{Lon: 120.01, Lat: 23.01, Dep: 0}: {},
		{Lon: 120, Lat: 23, Dep: 1}:       {},
		{Lon: 120.01, Lat: 23, Dep: 1}:    {},
		{Lon: 120, Lat: 23.01, Dep: 1}:    {},
		{Lon: 120.01, Lat: 23.01, Dep: 1}: {},
	}
	for _, idx := range edges.Vertices() {
		loc, err := normgrid.Default().Recover(idx, normgrid.StageCoarse)
		require.NoError(t, err)
		assert.Contains(t, want, loc)
	}
}

func TestBuild_CoarseSurfacePatch(t *testing.T) {
	// Both endpoints on the surface plane: a 2×2 patch whose neighbor graph
	// has 6 edges (4 sides + 2 diagonals).
	b := uniformBuilder(t, graphbuilder.WithExtraRange(0, 0, 0))
	sta := normgrid.Location{Lon: 120, Lat: 23, Dep: 0}
	sou := normgrid.Location{Lon: 120.01, Lat: 23, Dep: 0}

	// Widen only latitude so the patch is 2×2 on the surface.
	edges, err := b.Build(sta, normgrid.Location{Lon: 120.01, Lat: 23.01, Dep: 0}, normgrid.StageCoarse, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, edges.Len())

	// Degenerate to a single row: one edge.
	edges, err = b.Build(sta, sou, normgrid.StageCoarse, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, edges.Len())
}

func TestBuild_EdgeInvariants(t *testing.T) {
	b := uniformBuilder(t)
	sta := normgrid.Location{Lon: 120, Lat: 23, Dep: 0}
	sou := normgrid.Location{Lon: 120.05, Lat: 23.05, Dep: 5}

	edges, err := b.Build(sta, sou, normgrid.StageCoarse, nil)
	require.NoError(t, err)
	require.Positive(t, edges.Len())

	seen := make(map[[2]int64]struct{}, edges.Len())
	for _, e := range edges.Edges() {
		assert.NotEqual(t, e.U, e.V)
		assert.Less(t, e.U, e.V, "edges must be canonical")
		assert.GreaterOrEqual(t, e.W, 0.0)
		key := [2]int64{e.U, e.V}
		_, dup := seen[key]
		assert.False(t, dup, "pair %v duplicated", key)
		seen[key] = struct{}{}
	}
}

func TestBuild_FineCorridorBounded(t *testing.T) {
	// Two corridor boxes of 5×5×5 fine vertices each bound the edge count by
	// |vertices| · |incs|.
	b := uniformBuilder(t, graphbuilder.WithRanges(0.01, 0.01, 1))
	sta := normgrid.Location{Lon: 120, Lat: 23, Dep: 0}
	sou := normgrid.Location{Lon: 120.01, Lat: 23.01, Dep: 1}
	path := []normgrid.Location{sta, sou}

	edges, err := b.Build(sta, sou, normgrid.StageFine, path)
	require.NoError(t, err)

	const fineIncs = 5*5*3 - 1
	assert.Positive(t, edges.Len())
	assert.LessOrEqual(t, edges.Len(), 2*125*fineIncs)
}

func TestBuild_FineCorridorsOverlapDeduplicated(t *testing.T) {
	// The same center twice must not change the edge set.
	b := uniformBuilder(t, graphbuilder.WithRanges(0.01, 0.01, 1))
	sta := normgrid.Location{Lon: 120, Lat: 23, Dep: 0}
	sou := normgrid.Location{Lon: 120.01, Lat: 23.01, Dep: 1}

	once, err := b.Build(sta, sou, normgrid.StageFine, []normgrid.Location{sta})
	require.NoError(t, err)
	twice, err := b.Build(sta, sou, normgrid.StageFine, []normgrid.Location{sta, sta})
	require.NoError(t, err)

	assert.Equal(t, once.Len(), twice.Len())
	assert.Equal(t, once.Edges(), twice.Edges())
}

func TestBuild_OutsideModelOmitsEdges(t *testing.T) {
	// A corridor entirely outside the model's axis spans yields no edges:
	// holes mean infinite slowness, not failure.
	b := uniformBuilder(t, graphbuilder.WithExtraRange(0, 0, 0))
	sta := normgrid.Location{Lon: 0, Lat: 0, Dep: 0}
	sou := normgrid.Location{Lon: 0.01, Lat: 0.01, Dep: 1}

	edges, err := b.Build(sta, sou, normgrid.StageCoarse, nil)
	require.NoError(t, err)
	assert.Zero(t, edges.Len())
}

func TestEdgeSet_AddCanonicalizesAndDeduplicates(t *testing.T) {
	s := graphbuilder.NewEdgeSet()

	assert.True(t, s.Add(7, 3, 1.5))
	assert.False(t, s.Add(3, 7, 2.5), "reversed pair is the same edge")
	assert.False(t, s.Add(7, 3, 9.9))
	assert.False(t, s.Add(4, 4, 1), "self-loops are rejected")
	require.Equal(t, 1, s.Len())

	e := s.Edges()[0]
	assert.Equal(t, int64(3), e.U)
	assert.Equal(t, int64(7), e.V)
	assert.Equal(t, 1.5, e.W, "first weight wins")
	assert.Equal(t, []int64{3, 7}, s.Vertices())
}
