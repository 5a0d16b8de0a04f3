package shortestpath

import (
	"fmt"

	"github.com/dinextw/traveltime/dijkstra"
	"github.com/dinextw/traveltime/graphbuilder"
	"github.com/dinextw/traveltime/normgrid"
)

// Driver composes the graph builder and a Dijkstra solver into the
// two-stage travel-time computation. A Driver is single-use per Run in the
// sense that each Run replaces the previous results; it is not safe for
// concurrent use.
type Driver struct {
	grid    *normgrid.Grid
	builder *graphbuilder.Builder
	solver  dijkstra.Solver

	state         State
	travelTime    float64
	finePath      []normgrid.Location
	vertexWeights map[int64]float64
}

// Option configures a Driver.
type Option func(*Driver)

// WithSolver replaces the default in-process Dijkstra engine, e.g. with a
// dijkstra.External running the standalone binary.
func WithSolver(s dijkstra.Solver) Option {
	return func(d *Driver) { d.solver = s }
}

// New constructs a Driver over the given grid and builder.
func New(grid *normgrid.Grid, builder *graphbuilder.Builder, opts ...Option) (*Driver, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if builder == nil {
		return nil, ErrNilBuilder
	}
	d := &Driver{
		grid:    grid,
		builder: builder,
		solver:  dijkstra.NewInProcess(),
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// State returns the driver's current position in the run state machine.
func (d *Driver) State() State { return d.state }

// Run executes both stages for one station–source pair and returns the
// fine-stage travel time in seconds. On any error the driver resets to
// Idle and no partial results remain visible.
func (d *Driver) Run(sta, sou normgrid.Location) (float64, error) {
	d.reset()

	// Stage 1: coarse sweep over the whole station–source box.
	coarseRes, coarseVerts, err := d.runStage(sta, sou, normgrid.StageCoarse, nil)
	if err != nil {
		d.reset()

		return 0, err
	}
	coarsePath, err := d.recoverPath(coarseRes.ShortestPath, coarseVerts, normgrid.StageCoarse)
	if err != nil {
		d.reset()

		return 0, err
	}

	// Stage 2: fine sweep inside the corridor around the coarse path.
	fineRes, fineVerts, err := d.runStage(sta, sou, normgrid.StageFine, coarsePath)
	if err != nil {
		d.reset()

		return 0, err
	}
	finePath, err := d.recoverPath(fineRes.ShortestPath, fineVerts, normgrid.StageFine)
	if err != nil {
		d.reset()

		return 0, err
	}

	d.travelTime = fineRes.ShortestWeight
	d.finePath = finePath
	d.vertexWeights = make(map[int64]float64, len(fineVerts))
	for slot, w := range fineRes.VertexWeights {
		if slot >= len(fineVerts) {
			break // engine reported more weights than vertices
		}
		d.vertexWeights[fineVerts[slot]] = w
	}
	d.state = StateDone

	return d.travelTime, nil
}

// reset clears all results and returns the state machine to Idle.
func (d *Driver) reset() {
	d.state = StateIdle
	d.travelTime = 0
	d.finePath = nil
	d.vertexWeights = nil
}

// runStage builds one stage's graph, numbers its vertices with the station
// at slot 0, and solves it. Returns the solver result and the slot→grid
// index table.
func (d *Driver) runStage(sta, sou normgrid.Location, stage normgrid.Stage, path []normgrid.Location) (*dijkstra.Result, []int64, error) {
	edges, err := d.builder.Build(sta, sou, stage, path)
	if err != nil {
		return nil, nil, err
	}
	switch stage {
	case normgrid.StageCoarse:
		d.state = StateBuiltCoarse
	case normgrid.StageFine:
		d.state = StateBuiltFine
	}

	staIdx, err := d.grid.NormIndex(sta, stage)
	if err != nil {
		return nil, nil, err
	}
	souIdx, err := d.grid.NormIndex(sou, stage)
	if err != nil {
		return nil, nil, err
	}

	verts := edges.Vertices()
	slotOf := make(map[int64]int, len(verts))
	for i, idx := range verts {
		slotOf[idx] = i
	}
	staSlot, ok := slotOf[staIdx]
	if !ok {
		return nil, nil, fmt.Errorf("%w: station index %d at stage %v", ErrVertexMissing, staIdx, stage)
	}
	if _, ok := slotOf[souIdx]; !ok {
		return nil, nil, fmt.Errorf("%w: source index %d at stage %v", ErrVertexMissing, souIdx, stage)
	}

	// The station occupies slot 0 by contract; swap it into place.
	verts[staSlot], verts[0] = verts[0], verts[staSlot]
	slotOf[verts[staSlot]] = staSlot
	slotOf[staIdx] = 0

	slotEdges := make([]dijkstra.Edge, 0, edges.Len())
	for _, e := range edges.Edges() {
		slotEdges = append(slotEdges, dijkstra.Edge{U: slotOf[e.U], V: slotOf[e.V], W: e.W})
	}

	res, err := d.solver.Solve(slotEdges, len(verts), 0, slotOf[souIdx])
	if err != nil {
		return nil, nil, err
	}
	switch stage {
	case normgrid.StageCoarse:
		d.state = StateRanCoarse
	case normgrid.StageFine:
		d.state = StateRanFine
	}

	return res, verts, nil
}

// recoverPath maps solver slots back to grid locations, reversing the
// engine's sink-first order so the path runs station → source.
func (d *Driver) recoverPath(slots []int, verts []int64, stage normgrid.Stage) ([]normgrid.Location, error) {
	path := make([]normgrid.Location, len(slots))
	for i, slot := range slots {
		if slot < 0 || slot >= len(verts) {
			return nil, fmt.Errorf("%w: path slot %d of %d vertices", ErrVertexMissing, slot, len(verts))
		}
		loc, err := d.grid.Recover(verts[slot], stage)
		if err != nil {
			return nil, err
		}
		path[len(slots)-1-i] = loc
	}

	return path, nil
}

// TravelTime returns the fine-stage travel time of the last completed Run.
func (d *Driver) TravelTime() (float64, error) {
	if d.state != StateDone {
		return 0, ErrNotRun
	}

	return d.travelTime, nil
}

// Path returns the fine-stage ray path ordered from station to source.
func (d *Driver) Path() ([]normgrid.Location, error) {
	if d.state != StateDone {
		return nil, ErrNotRun
	}
	out := make([]normgrid.Location, len(d.finePath))
	copy(out, d.finePath)

	return out, nil
}

// VertexWeights returns the shortest distance from the station for every
// fine-stage vertex, keyed by grid index.
func (d *Driver) VertexWeights() (map[int64]float64, error) {
	if d.state != StateDone {
		return nil, ErrNotRun
	}
	out := make(map[int64]float64, len(d.vertexWeights))
	for idx, w := range d.vertexWeights {
		out[idx] = w
	}

	return out, nil
}
