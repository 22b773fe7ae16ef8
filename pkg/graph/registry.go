package graph

import (
	"context"
	"errors"

	aerrors "github.com/matzehuels/aptgraph/pkg/errors"
)

// Installed is the name of the graph holding every installed package as a
// node, with no edges.
const Installed = "Installed"

// Sink persists and renders graphs into an output directory.
type Sink interface {
	// Persist writes the graph's description (DOT, JSON, a database row).
	Persist(ctx context.Context, dir string, g *Graph) error

	// Render produces viewable artifacts for the graph.
	Render(ctx context.Context, dir string, g *Graph) error
}

// Registry owns the graphs of one collection pass.
type Registry struct {
	dir    string
	sink   Sink
	graphs map[string]*Graph
	order  []string
}

// NewRegistry creates a registry whose graphs are written to dir by sink.
// A nil sink discards output.
func NewRegistry(dir string, sink Sink) *Registry {
	if sink == nil {
		sink = MultiSink{}
	}
	return &Registry{
		dir:    dir,
		sink:   sink,
		graphs: make(map[string]*Graph),
	}
}

// Dir returns the output directory shared by all graphs.
func (r *Registry) Dir() string { return r.dir }

// Get returns the graph called name, creating it on first use.
func (r *Registry) Get(name string) *Graph {
	if g, ok := r.graphs[name]; ok {
		return g
	}
	g := New(name)
	r.graphs[name] = g
	r.order = append(r.order, name)
	return g
}

// Installed returns the graph of installed packages.
func (r *Registry) Installed() *Graph { return r.Get(Installed) }

// Lookup returns the graph called name without creating it.
func (r *Registry) Lookup(name string) (*Graph, bool) {
	g, ok := r.graphs[name]
	return g, ok
}

// Names returns graph names in creation order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Graphs returns the graphs in creation order.
func (r *Registry) Graphs() []*Graph {
	out := make([]*Graph, len(r.order))
	for i, name := range r.order {
		out[i] = r.graphs[name]
	}
	return out
}

// Len returns the number of graphs.
func (r *Registry) Len() int { return len(r.order) }

// PersistAll persists every graph. All graphs are attempted; failures are
// returned joined, each carrying [aerrors.ErrCodeRender].
func (r *Registry) PersistAll(ctx context.Context) error {
	return r.each(ctx, "persist", r.sink.Persist)
}

// RenderAll renders every graph. All graphs are attempted; failures are
// returned joined, each carrying [aerrors.ErrCodeRender].
func (r *Registry) RenderAll(ctx context.Context) error {
	return r.each(ctx, "render", r.sink.Render)
}

func (r *Registry) each(ctx context.Context, op string, fn func(context.Context, string, *Graph) error) error {
	var errs []error
	for _, g := range r.Graphs() {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := fn(ctx, r.dir, g); err != nil {
			errs = append(errs, aerrors.Wrap(aerrors.ErrCodeRender, err, "%s %s", op, g.Name()))
		}
	}
	return errors.Join(errs...)
}

// MultiSink fans out to several sinks. Every sink is attempted and the
// failures are joined.
type MultiSink []Sink

// Persist calls Persist on every sink.
func (m MultiSink) Persist(ctx context.Context, dir string, g *Graph) error {
	var errs []error
	for _, s := range m {
		if err := s.Persist(ctx, dir, g); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Render calls Render on every sink.
func (m MultiSink) Render(ctx context.Context, dir string, g *Graph) error {
	var errs []error
	for _, s := range m {
		if err := s.Render(ctx, dir, g); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ Sink = MultiSink(nil)
