package datastore

import (
	"context"
	"errors"

	"github.com/dinextw/traveltime/normgrid"
)

// Sentinel errors for travel-time persistence.
var (
	// ErrNotFound indicates no travel time is stored for the pair.
	ErrNotFound = errors.New("datastore: travel time not found")

	// ErrSameLocation indicates a lookup with coincident station and source.
	ErrSameLocation = errors.New("datastore: station and source locations coincide")
)

// Lookup resolves both locations to fine-stage grid indices and queries the
// store. Coincident locations are a caller error, not a miss.
func Lookup(ctx context.Context, s Store, grid *normgrid.Grid, staLoc, souLoc normgrid.Location) (float64, error) {
	if staLoc == souLoc {
		return 0, ErrSameLocation
	}
	staIdx, err := grid.NormIndex(staLoc, normgrid.StageFine)
	if err != nil {
		return 0, err
	}
	souIdx, err := grid.NormIndex(souLoc, normgrid.StageFine)
	if err != nil {
		return 0, err
	}

	return s.Time(ctx, staIdx, souIdx)
}

// Store persists per-station travel times keyed by source grid index.
type Store interface {
	// ImportTimes upserts the travel times for one station. A key collision
	// keeps the minimum of the stored and imported values.
	ImportTimes(ctx context.Context, staIdx int64, times map[int64]float64) error

	// Time returns the stored travel time in seconds from the station grid
	// index to the source grid index. Returns ErrNotFound when absent.
	Time(ctx context.Context, staIdx, souIdx int64) (float64, error)

	// Close releases the store's resources.
	Close() error
}
