package nodelink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/aptgraph/pkg/graph"
	aptio "github.com/matzehuels/aptgraph/pkg/io"
	"github.com/matzehuels/aptgraph/pkg/render"
)

// DOTExt is the extension of persisted DOT descriptions.
const DOTExt = ".gv"

// Writer is a [graph.Sink] that writes each graph into the output directory:
//
//	<name>.gv         DOT description (Persist)
//	<name>.json       JSON description, when JSON is set (Persist)
//	<name>.<format>   one image per format (Render)
type Writer struct {
	Formats []string
	JSON    bool
	Options Options

	renderer Renderer
	written  map[string][]string
}

// NewWriter returns a Writer for the given image formats.
func NewWriter(formats []string, writeJSON bool, opts Options) (*Writer, error) {
	if len(formats) == 0 {
		formats = render.DefaultFormats
	}
	if err := render.ValidateFormats(formats); err != nil {
		return nil, err
	}
	return &Writer{Formats: formats, JSON: writeJSON, Options: opts}, nil
}

// Persist writes the DOT (and optionally JSON) description of g, creating
// dir if needed.
func (w *Writer) Persist(ctx context.Context, dir string, g *graph.Graph) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, g.Name()+DOTExt)
	if err := os.WriteFile(path, []byte(ToDOT(g, w.Options)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.record(g.Name(), g.Name()+DOTExt)

	if w.JSON {
		if err := aptio.ExportJSON(g, filepath.Join(dir, g.Name()+".json")); err != nil {
			return err
		}
		w.record(g.Name(), g.Name()+".json")
	}
	return nil
}

// Render writes one image per configured format. A failing format does not
// prevent the remaining ones; the first error is returned.
func (w *Writer) Render(ctx context.Context, dir string, g *graph.Graph) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	dot := ToDOT(g, w.Options)
	var firstErr error
	for _, format := range w.Formats {
		file := g.Name() + "." + format
		data, err := w.renderer.Render(ctx, dot, format)
		if err == nil {
			err = os.WriteFile(filepath.Join(dir, file), data, 0644)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", format, err)
			}
			continue
		}
		w.record(g.Name(), file)
	}
	return firstErr
}

// Files lists the files Persist and Render actually wrote for the graph
// called name, in the order they were written.
func (w *Writer) Files(name string) []string {
	return slices.Clone(w.written[name])
}

func (w *Writer) record(name, file string) {
	if w.written == nil {
		w.written = make(map[string][]string)
	}
	if !slices.Contains(w.written[name], file) {
		w.written[name] = append(w.written[name], file)
	}
}

// Close releases the Graphviz instance.
func (w *Writer) Close() error {
	return w.renderer.Close()
}

var _ graph.Sink = (*Writer)(nil)
