package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/aptgraph/pkg/graph"
)

type graphJSON struct {
	Name  string     `json:"name"`
	Nodes []string   `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

type edgeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes g as indented JSON and writes it to w.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := graphJSON{
		Name:  g.Name(),
		Nodes: g.Nodes(),
		Edges: make([]edgeJSON, 0, g.EdgeCount()),
	}
	if out.Nodes == nil {
		out.Nodes = []string{}
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edgeJSON{From: e.From, To: e.To})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
