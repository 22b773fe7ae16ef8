// Package render holds the output formats shared by the renderers and the
// command line.
//
// Graph images are produced by the [nodelink] subpackage, which lays out
// each relation graph with Graphviz. Supported image formats:
//
//   - svg: scalable, suitable for browsers and "aptgraph serve"
//   - png: raster, 96 dpi as produced by Graphviz
//
// The Graphviz DOT description (.gv) is always written by the persist step
// and is not a render format.
package render
