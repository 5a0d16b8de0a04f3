// Package geomodel loads a gridded seismic velocity model and answers point
// speed queries by trilinear interpolation.
//
// The model file is plain text. The first line carries five whitespace-
// separated numbers of which the last three are the axis cardinalities
// (longitudes, latitudes, depths). The next three lines list the longitude,
// latitude, and depth ticks. Then follow depths × latitudes lines, each
// holding one longitude row of speeds in km/s; the row for depth index d and
// latitude index a appears at line d·Na + a of the block.
//
// Axis vectors need not be uniformly spaced, only monotone non-decreasing.
// Speed queries locate the enclosing cell by right-binary-search on each
// axis and blend the eight corner speeds with axis-proportional fractions:
// plain trilinear interpolation in (lon, lat, dep) space, not physical
// distances. A query outside the axis spans fails with ErrOutOfModel;
// duplicated axis ticks collapse that dimension to the single tick's value.
package geomodel
