// Package reducer partitions seed ranges into independent tasks, scans them
// concurrently against a shared read-only engine.Pipeline, and min-reduces the
// per-task results after every task has finished.
//
// The only contract a strategy implements is Scanner. Tasks never share
// mutable state; results travel back through the pool and are combined once.
package reducer
