package graphbuilder

import (
	"errors"
	"fmt"

	"github.com/dinextw/traveltime/geodist"
	"github.com/dinextw/traveltime/geomodel"
	"github.com/dinextw/traveltime/normgrid"
)

// Builder enumerates corridor vertices and scores the undirected edges
// between them. It is immutable after construction and safe to reuse across
// builds; every Build call returns a fresh EdgeSet.
type Builder struct {
	grid       *normgrid.Grid
	model      *geomodel.Model
	extraRange [3]float64
	ranges     [3]float64
}

// New constructs a Builder over the given grid and velocity model.
func New(grid *normgrid.Grid, model *geomodel.Model, opts ...Option) (*Builder, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if model == nil {
		return nil, ErrNilModel
	}
	cfg := Options{ExtraRange: DefaultExtraRange, Ranges: DefaultRanges}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Builder{
		grid:       grid,
		model:      model,
		extraRange: cfg.ExtraRange,
		ranges:     cfg.Ranges,
	}, nil
}

// boundary is one corridor box mapped to index space as four corner
// indices. min ≤ lonMax ≤ lonLatMax ≤ max, and the pairwise differences
// are multiples of the axis strides.
type boundary struct {
	min       int64
	lonMax    int64
	lonLatMax int64
	max       int64
}

// Build returns the edge set covering the search corridor for one
// station–source pair at the given stage. The coarse stage takes no path;
// the fine stage requires the coarse-stage shortest path as corridor
// centers.
func (b *Builder) Build(sta, sou normgrid.Location, stage normgrid.Stage, path []normgrid.Location) (*EdgeSet, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadStage, int(stage))
	}
	if sta == sou {
		return nil, ErrSameLocation
	}

	var uppers, lowers []normgrid.Location
	switch stage {
	case normgrid.StageCoarse:
		if path != nil {
			return nil, ErrUnexpectedPath
		}
		uppers = []normgrid.Location{sta}
		lowers = []normgrid.Location{sou}
	case normgrid.StageFine:
		if len(path) == 0 {
			return nil, ErrEmptyPath
		}
		for _, p := range path {
			uppers = append(uppers, normgrid.Location{
				Lon: p.Lon - b.ranges[0]/2,
				Lat: p.Lat - b.ranges[1]/2,
				Dep: p.Dep - b.ranges[2]/2,
			})
			lowers = append(lowers, normgrid.Location{
				Lon: p.Lon + b.ranges[0]/2,
				Lat: p.Lat + b.ranges[1]/2,
				Dep: p.Dep + b.ranges[2]/2,
			})
		}
	}

	numLon, err := b.grid.NumLonIndex(stage)
	if err != nil {
		return nil, err
	}
	numLat, err := b.grid.NumLatIndex(stage)
	if err != nil {
		return nil, err
	}
	incs := buildIncs(stage, numLon, numLat)

	edges := NewEdgeSet()
	for i := range uppers {
		if err := b.sweepBox(edges, uppers[i], lowers[i], stage, numLon, numLat, incs); err != nil {
			return nil, err
		}
	}

	return edges, nil
}

// sweepBox adds every scored edge of one corridor box to edges.
func (b *Builder) sweepBox(edges *EdgeSet, upper, lower normgrid.Location, stage normgrid.Stage, numLon, numLat int64, incs []int64) error {
	upperSnap, err := b.grid.Snap(upper, stage)
	if err != nil {
		return err
	}
	lowerSnap, err := b.grid.Snap(lower, stage)
	if err != nil {
		return err
	}
	shift := geodist.ShiftLon(upperSnap, lowerSnap)

	bnd, err := b.setBoundary(upper, lower, stage)
	if err != nil {
		return err
	}

	// Walk the box longitude-row first, stepping the latitude and depth
	// strides; the three corner offsets bound each nested walk exactly.
	plane := numLon * numLat
	for depOff := int64(0); depOff <= bnd.max-bnd.lonLatMax; depOff += plane {
		for latOff := int64(0); latOff <= bnd.lonLatMax-bnd.lonMax; latOff += numLon {
			for idx := bnd.min + latOff + depOff; idx <= bnd.lonMax+latOff+depOff; idx++ {
				if err := b.createEdges(edges, idx, incs, bnd, shift, stage, numLon, numLat); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// setBoundary maps one box to its four corner indices. The coarse stage
// pads longitude and latitude on both sides and depth downward only; the
// fine stage boxes carry their extent already.
func (b *Builder) setBoundary(upper, lower normgrid.Location, stage normgrid.Stage) (boundary, error) {
	minLoc := normgrid.Location{
		Lon: min(upper.Lon, lower.Lon),
		Lat: min(upper.Lat, lower.Lat),
		Dep: min(upper.Dep, lower.Dep),
	}
	maxLoc := normgrid.Location{
		Lon: max(upper.Lon, lower.Lon),
		Lat: max(upper.Lat, lower.Lat),
		Dep: max(upper.Dep, lower.Dep),
	}
	if stage == normgrid.StageCoarse {
		minLoc.Lon -= b.extraRange[0]
		minLoc.Lat -= b.extraRange[1]
		maxLoc.Lon += b.extraRange[0]
		maxLoc.Lat += b.extraRange[1]
		maxLoc.Dep += b.extraRange[2]
	}

	var bnd boundary
	var err error
	if bnd.min, err = b.grid.NormIndex(minLoc, stage); err != nil {
		return boundary{}, err
	}
	if bnd.lonMax, err = b.grid.NormIndex(normgrid.Location{Lon: maxLoc.Lon, Lat: minLoc.Lat, Dep: minLoc.Dep}, stage); err != nil {
		return boundary{}, err
	}
	if bnd.lonLatMax, err = b.grid.NormIndex(normgrid.Location{Lon: maxLoc.Lon, Lat: maxLoc.Lat, Dep: minLoc.Dep}, stage); err != nil {
		return boundary{}, err
	}
	if bnd.max, err = b.grid.NormIndex(maxLoc, stage); err != nil {
		return boundary{}, err
	}

	return bnd, nil
}

// inside reports whether idx names a grid point within the box. The modulus
// tests reject indices inside the linear span [min, max] that fall outside
// the cuboid's latitude or longitude band.
func inside(idx int64, bnd boundary, numLon, numLat int64) bool {
	if idx < bnd.min || idx > bnd.max {
		return false
	}
	plane := numLon * numLat
	if idx%plane < bnd.min%plane || idx%plane > bnd.lonLatMax%plane {
		return false
	}
	if (idx%plane)%numLon < bnd.min%numLon || (idx%plane)%numLon > bnd.lonMax%numLon {
		return false
	}

	return true
}

// createEdges scores the edge from idx to each in-box neighbor. A neighbor
// outside the velocity model, or with zero speed, contributes no edge:
// infinite slowness is modeled by omission.
func (b *Builder) createEdges(edges *EdgeSet, idx int64, incs []int64, bnd boundary, shift float64, stage normgrid.Stage, numLon, numLat int64) error {
	loc, err := b.grid.Recover(idx, stage)
	if err != nil {
		return err
	}
	speed, ok, err := b.speedAt(loc)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	for _, inc := range incs {
		adj := idx + inc
		if !inside(adj, bnd, numLon, numLat) {
			continue
		}
		locAdj, err := b.grid.Recover(adj, stage)
		if err != nil {
			return err
		}
		speedAdj, ok, err := b.speedAt(locAdj)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		dist := geodist.Distance(loc, locAdj, shift, geodist.EarthRadius)
		edges.Add(idx, adj, dist*(1/speed+1/speedAdj)*0.5)
	}

	return nil
}

// speedAt wraps the model query: out-of-model and zero speeds report
// ok=false (the edge is skipped); any other failure propagates.
func (b *Builder) speedAt(loc normgrid.Location) (float64, bool, error) {
	v, err := b.model.Speed(loc)
	if err != nil {
		if errors.Is(err, geomodel.ErrOutOfModel) {
			return 0, false, nil
		}

		return 0, false, err
	}
	if v <= 0 {
		return 0, false, nil
	}

	return v, true, nil
}

// buildIncs precomputes the neighbor offsets in index space. The coarse
// stage reaches one gap in every horizontal direction and one gap downward;
// the fine stage reaches two. Neither stage looks upward.
func buildIncs(stage normgrid.Stage, numLon, numLat int64) []int64 {
	reach := int64(1)
	if stage == normgrid.StageFine {
		reach = 2
	}
	plane := numLon * numLat
	incs := make([]int64, 0, (2*reach+1)*(2*reach+1)*(reach+1)-1)
	for cDep := int64(0); cDep <= reach; cDep++ {
		for cLat := -reach; cLat <= reach; cLat++ {
			for cLon := -reach; cLon <= reach; cLon++ {
				inc := cLon + cLat*numLon + cDep*plane
				if inc == 0 {
					continue
				}
				incs = append(incs, inc)
			}
		}
	}

	return incs
}
