package geomodel

import "errors"

// Sentinel errors for model loading and speed queries.
var (
	// ErrMalformed indicates the velocity file cannot be parsed: wrong token
	// counts, non-numeric fields, or dimension mismatches.
	ErrMalformed = errors.New("geomodel: malformed velocity model file")

	// ErrOutOfModel indicates a speed query outside the model's axis spans.
	ErrOutOfModel = errors.New("geomodel: location outside velocity model")

	// ErrBadAxis indicates an axis vector that is not monotone non-decreasing.
	ErrBadAxis = errors.New("geomodel: axis ticks must be monotone non-decreasing")

	// ErrBadSpeed indicates a negative speed value in the model.
	ErrBadSpeed = errors.New("geomodel: speeds must be non-negative")
)

// DefaultModelPath is the canonical velocity-model filename.
const DefaultModelPath = "./_input/MOD_H13"
