// Package collect drives a collection pass: it lists installed packages,
// fetches and parses each package's dependency dump, routes the resulting
// edges into per-relation graphs, and hands the finished graphs to the
// registry's sink.
//
// Fetching may run on a bounded worker pool, but every graph mutation
// happens on the goroutine that called [Collector.Run], so graphs need no
// locking.
//
// Failures split into two classes. Listing installed packages is the only
// fatal step; a failure there aborts the pass before anything is written.
// A package whose dump cannot be fetched or parsed is logged and skipped,
// and a graph that fails to persist or render does not stop the others.
// Skipped work is reported in [Result.Errors].
package collect
