package graphbuilder

import "errors"

// Sentinel errors for graph construction.
var (
	// ErrSameLocation indicates the station and source coincide.
	ErrSameLocation = errors.New("graphbuilder: station and source locations coincide")

	// ErrBadStage indicates a stage other than coarse or fine.
	ErrBadStage = errors.New("graphbuilder: invalid stage")

	// ErrUnexpectedPath indicates a corridor path supplied to the coarse stage.
	ErrUnexpectedPath = errors.New("graphbuilder: coarse stage takes no corridor path")

	// ErrEmptyPath indicates a fine-stage build without corridor center points.
	ErrEmptyPath = errors.New("graphbuilder: fine stage requires a non-empty corridor path")

	// ErrNilGrid indicates a Builder constructed without a grid.
	ErrNilGrid = errors.New("graphbuilder: grid is nil")

	// ErrNilModel indicates a Builder constructed without a velocity model.
	ErrNilModel = errors.New("graphbuilder: velocity model is nil")
)

// Default corridor geometry, in (degrees, degrees, km).
var (
	// DefaultExtraRange pads the coarse-stage bounding box: both sides in
	// longitude and latitude, downward only in depth.
	DefaultExtraRange = [3]float64{0.02, 0.02, 20}

	// DefaultRanges is the full extent of each fine-stage corridor box,
	// centered on a coarse-path point.
	DefaultRanges = [3]float64{0.05, 0.05, 2}
)

// Options tunes the corridor geometry. New starts from the package defaults
// and applies each Option on top, so a zero override (e.g. no coarse
// padding) is honored as given.
type Options struct {
	// ExtraRange pads the coarse bounding box, per axis.
	ExtraRange [3]float64

	// Ranges is the fine-stage box extent around each path point, per axis.
	Ranges [3]float64
}

// Option mutates Options during Builder construction.
type Option func(*Options)

// WithExtraRange overrides the coarse-stage padding.
func WithExtraRange(lon, lat, dep float64) Option {
	return func(o *Options) { o.ExtraRange = [3]float64{lon, lat, dep} }
}

// WithRanges overrides the fine-stage corridor box extent.
func WithRanges(lon, lat, dep float64) Option {
	return func(o *Options) { o.Ranges = [3]float64{lon, lat, dep} }
}
