// Package graph provides the deduplicating graph and the per-relation graph
// registry that a collection pass fills.
//
// # Graph
//
// A [Graph] is a named, directed, write-only graph. Adding a node or edge
// that is already present is a no-op, so the same relation observed from
// many packages collapses into one edge:
//
//	g := graph.New("Depends")
//	g.AddEdge("libc6", "bash")
//	g.AddEdge("libc6", "bash") // no-op
//	g.AddEdge("bash", "libc6") // distinct edge
//
// Edges are ordered pairs: A->B and B->A coexist. Nodes and edges are kept
// in insertion order so persisted output is deterministic.
//
// # Registry
//
// A [Registry] maps graph names (relation kinds plus [Installed]) to graphs,
// creating each on first [Registry.Get]. [Registry.PersistAll] and
// [Registry.RenderAll] hand every graph to a [Sink]; a failing graph does
// not stop the others.
//
// Neither type is safe for concurrent use.
package graph
