package io

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/aptgraph/pkg/graph"
)

// ManifestFile is the manifest's file name inside an output directory.
const ManifestFile = "manifest.json"

// Manifest describes one collection pass.
type Manifest struct {
	RunID     string          `json:"run_id"`
	Generator string          `json:"generator,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Packages  int             `json:"packages"`
	Errors    int             `json:"errors"`
	Graphs    []GraphManifest `json:"graphs"`
}

// GraphManifest describes one written graph.
type GraphManifest struct {
	Name  string   `json:"name"`
	Nodes int      `json:"nodes"`
	Edges int      `json:"edges"`
	Files []string `json:"files"`
}

// NewManifest describes the graphs of a finished pass. files lists the
// artifacts written for a graph name and may be nil.
func NewManifest(runID string, packages, errs int, graphs []*graph.Graph, files func(name string) []string, now time.Time) *Manifest {
	m := &Manifest{
		RunID:     runID,
		CreatedAt: now.UTC(),
		Packages:  packages,
		Errors:    errs,
		Graphs:    make([]GraphManifest, 0, len(graphs)),
	}
	for _, g := range graphs {
		gm := GraphManifest{Name: g.Name(), Nodes: g.NodeCount(), Edges: g.EdgeCount()}
		if files != nil {
			gm.Files = files(g.Name())
		}
		m.Graphs = append(m.Graphs, gm)
	}
	return m
}

// Graph returns the entry called name.
func (m *Manifest) Graph(name string) (GraphManifest, bool) {
	for _, g := range m.Graphs {
		if g.Name == name {
			return g, true
		}
	}
	return GraphManifest{}, false
}

// WriteManifest writes m to dir/manifest.json.
func WriteManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadManifest reads dir/manifest.json.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &m, nil
}
