package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/aptgraph/pkg/graph"
)

// ReadJSON decodes a graph written by [WriteJSON].
//
// A missing "name" is an error. Edges may reference nodes that are not
// listed in "nodes"; they are added implicitly. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data graphJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if data.Name == "" {
		return nil, fmt.Errorf("decode: graph has no name")
	}

	g := graph.New(data.Name)
	for _, n := range data.Nodes {
		g.AddNode(n)
	}
	for _, e := range data.Edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("edge %q->%q: empty endpoint", e.From, e.To)
		}
		g.AddEdge(e.From, e.To)
	}
	return g, nil
}

// ImportJSON reads the graph stored at path.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
