// Package graphbuilder materializes the weighted undirected graph that the
// shortest-path stages search.
//
// The search region is a corridor: a union of axis-aligned boxes in
// (lon, lat, dep) space. The coarse stage uses a single box spanning the
// station and the source, padded by an extra range; the fine stage uses one
// small box around every point of the coarse-stage path. Each box is mapped
// to index space as four corner indices {min, lonMax, lonLatMax, max}, whose
// pairwise differences are exact multiples of the axis strides
// (1, Nl, Nl·Na). An index is inside the box when it lies in [min, max],
// its remainder modulo Nl·Na lies within the latitude band, and that
// remainder modulo Nl lies within the longitude band. The double-modulus
// test rejects indices that sit inside the linear span but outside the
// cuboid.
//
// Vertices are enumerated by three nested walks (longitude row, then
// latitude, then depth). For every vertex and every neighbor offset the
// builder scores one undirected edge: the chord distance between the two
// recovered grid points times the mean of their slownesses, a
// trapezoidal-rule estimate of ∫ds/v over the segment. Offsets never point
// upward: they reach one gap in each horizontal direction and one gap down
// on the coarse stage, two gaps on the fine stage. Edges touching a point
// outside the velocity
// model are omitted rather than failing the build.
//
// The edge set deduplicates by unordered index pair, so overlapping corridor
// boxes merge cleanly.
package graphbuilder
