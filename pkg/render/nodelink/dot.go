package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/aptgraph/pkg/graph"
	"github.com/matzehuels/aptgraph/pkg/render"
)

// Options configures node-link diagram generation.
type Options struct {
	// RankDir is the Graphviz rank direction ("TB", "LR", ...).
	// Empty means top to bottom.
	RankDir string
}

// ToDOT converts a graph to Graphviz DOT source. The graph name is used as
// both the DOT graph ID and its visible label.
func ToDOT(g *graph.Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", dotID(g.Name()))
	fmt.Fprintf(&buf, "  label=%s;\n", dotID(g.Name()))
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %s;\n", dotID(n))
	}

	if g.EdgeCount() > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", dotID(e.From), dotID(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotID quotes s as a DOT ID. Only quotes and backslashes are escaped.
func dotID(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

var formats = map[string]graphviz.Format{
	render.FormatSVG: graphviz.SVG,
	render.FormatPNG: graphviz.PNG,
}

// Renderer lays out DOT source with an in-process Graphviz instance.
// The instance is created on first use and released by Close.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	gv *graphviz.Graphviz
}

// Render lays out dot and encodes it in format ("svg" or "png").
func (r *Renderer) Render(ctx context.Context, dot, format string) ([]byte, error) {
	f, ok := formats[format]
	if !ok {
		return nil, render.ValidateFormats([]string{format})
	}

	if r.gv == nil {
		gv, err := graphviz.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("init graphviz: %w", err)
		}
		r.gv = gv
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := r.gv.Render(ctx, g, f, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Close releases the Graphviz instance.
func (r *Renderer) Close() error {
	if r.gv == nil {
		return nil
	}
	err := r.gv.Close()
	r.gv = nil
	return err
}
