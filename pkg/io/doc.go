// Package io provides JSON import and export for relation graphs and the
// run manifest.
//
// # Graph Format
//
// Each graph is written as
//
//	{
//	  "name": "Depends",
//	  "nodes": ["libc6", "bash"],
//	  "edges": [
//	    {"from": "libc6", "to": "bash"}
//	  ]
//	}
//
// Reading a graph back goes through [graph.Graph.AddEdge], so duplicate
// entries in hand-edited files collapse as they would during collection.
//
// # Manifest
//
// A [Manifest] summarizes one collection pass: its run ID, when it ran, how
// many packages it saw, the graphs it wrote and how many errors it skipped.
// It is stored as manifest.json next to the graphs and is what
// "aptgraph serve" lists.
package io
