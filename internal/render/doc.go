// Package render orchestrates trajectory workers over the seed grid.
//
// Two regimes share the same canvas contract:
//
//   - [Dispatcher] fans the grid out across a worker pool and blocks until
//     every seed completes (batch mode). Workers buffer a full trajectory
//     locally and take the session lock once per seed.
//   - [Walker] advances a single in-flight seed a bounded number of
//     iterations per presentation tick (incremental mode).
//
// [Session] bundles the canvas and walker behind one mutex: mutation and
// presentation are mutually exclusive, and a reset replaces both halves in
// one critical section so a reader never observes a half-cleared buffer.
//
// Overlapping blend writes depend on scheduling order, so batch renders are
// reproducible in coverage but not bit-for-bit in blended values.
package render
