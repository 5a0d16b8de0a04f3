// Package datastore persists computed travel times for later lookup.
//
// The contract is a keyed map per station: for a station grid index, each
// source grid index maps to a travel time in seconds. Importing the same
// (station, source) pair twice keeps the minimum of the two times: repeat
// computations can only improve a first-arrival estimate, never worsen it.
// Grid indices are fine-stage indices, matching the vertex weights the
// shortest-path driver emits.
//
// Two implementations satisfy Store: Memory, an in-process map for tests
// and one-shot runs, and Postgres, a pgx-backed table whose schema is
// managed by embedded goose migrations.
package datastore
