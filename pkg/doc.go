// Package pkg provides the libraries behind aptgraph.
//
// # Overview
//
// aptgraph turns the package database of an apt-based system into one
// directed graph per dependency relation. The packages are:
//
//  1. [apt] - package sources (apt subprocesses, cached) and the
//     apt-cache depends parser
//  2. [graph] - deduplicating graphs, the per-relation registry, sinks
//  3. [collect] - the collection driver and progress reporting
//  4. [render] - DOT generation and Graphviz rendering ([render/nodelink])
//  5. [io] - JSON export/import and the run manifest
//  6. [store] and [cache] - MongoDB publication, file and Redis caches
//
// # Data flow
//
//	apt list --installed
//	         ↓
//	    [apt.ParseInstalled]
//	         ↓
//	apt-cache depends <pkg>   (per package, optionally concurrent)
//	         ↓
//	    [apt.ParseDepends] → relation triples
//	         ↓
//	    [graph.Registry] (one graph per relation + Installed)
//	         ↓
//	<name>.gv, <name>.json, <name>.svg, manifest.json
package pkg
