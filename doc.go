// Package traveltime computes first-arrival seismic travel times between a
// surface station and a subsurface source inside a heterogeneous 3D velocity
// model of the Earth.
//
// The computation discretizes a bounded region of (longitude, latitude,
// depth) space into a regular grid, builds a weighted undirected graph whose
// edges approximate ray segments scored by travel time through a trilinearly
// interpolated velocity field, and runs Dijkstra over it. A two-stage
// refinement keeps the search tractable: a coarse global sweep yields an
// approximate ray path, and a finer grid is built only inside a corridor
// around that path for the second sweep.
//
// The module is organized as one subpackage per concern:
//
//	normgrid/      — bijection between geographic locations and dense integer
//	                 grid indices, with decimal-exact half-up snapping
//	geomodel/      — velocity-model file parsing and trilinear interpolation
//	geodist/       — geocentric Cartesian distance with longitude centering
//	graphbuilder/  — corridor enumeration and the undirected weighted edge set
//	dijkstra/      — shortest-path solver, edge-file codec, external engine
//	shortestpath/  — the two-stage driver: travel time, ray path, vertex weights
//	datastore/     — persisted travel-time lookups (Postgres or in-memory)
//	bending/       — wrapper for the pseudo-bending travel-time oracle
//	config/        — YAML configuration shared by the CLI
//
// See cmd/traveltime for the command-line entry point.
package traveltime
