// Package nodelink renders relation graphs as node-link diagrams.
//
// # Overview
//
// Each [graph.Graph] becomes a Graphviz digraph where packages are boxes and
// relations are arrows pointing from the required package to the package
// that requires it.
//
// # Usage
//
// Convert a graph to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	var r nodelink.Renderer
//	defer r.Close()
//	svg, err := r.Render(ctx, dot, "svg")
//
// [Writer] bundles both steps as a [graph.Sink] for the registry:
//
//	w, err := nodelink.NewWriter([]string{"svg", "png"}, true, nodelink.Options{})
//	reg := graph.NewRegistry(outDir, w)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process layout and
// rendering, so no Graphviz installation is required.
package nodelink
