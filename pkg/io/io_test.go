package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/aptgraph/pkg/graph"
)

func TestWriteReadJSON(t *testing.T) {
	g := graph.New("Depends")
	g.AddEdge("libc6", "bash")
	g.AddEdge("exim4", "postfix")
	g.AddEdge("postfix", "exim4")
	g.AddNode("lonely")

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got.Name() != "Depends" {
		t.Errorf("Name() = %q", got.Name())
	}
	if !slices.Equal(got.Nodes(), g.Nodes()) {
		t.Errorf("Nodes() = %v, want %v", got.Nodes(), g.Nodes())
	}
	if !slices.Equal(got.Edges(), g.Edges()) {
		t.Errorf("Edges() = %v, want %v", got.Edges(), g.Edges())
	}
}

func TestWriteJSONEmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(graph.New(graph.Installed), &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"nodes": []`) {
		t.Errorf("empty graph should encode empty node list, got %s", buf.String())
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"name": `},
		{"no name", `{"nodes": ["a"], "edges": []}`},
		{"empty endpoint", `{"name": "Depends", "edges": [{"from": "a", "to": ""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadJSON() error = nil, want error")
			}
		})
	}
}

func TestReadJSONDeduplicates(t *testing.T) {
	input := `{"name": "Depends", "nodes": ["a", "a"], "edges": [{"from": "a", "to": "b"}, {"from": "a", "to": "b"}]}`
	g, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("got %d nodes, %d edges; want 2, 1", g.NodeCount(), g.EdgeCount())
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Depends.json")
	g := graph.New("Depends")
	g.AddEdge("libc6", "bash")

	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if !got.HasEdge("libc6", "bash") {
		t.Error("imported graph lost its edge")
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON() of a missing file should fail")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{
		RunID:     "5f0c6b8e-2d1a-4c53-9a0e-1f2b3c4d5e6f",
		CreatedAt: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
		Packages:  2,
		Errors:    1,
		Graphs: []GraphManifest{
			{Name: graph.Installed, Nodes: 2, Files: []string{"Installed.gv"}},
			{Name: "Depends", Nodes: 2, Edges: 1, Files: []string{"Depends.gv", "Depends.svg"}},
		},
	}

	if err := WriteManifest(dir, m); err != nil {
		t.Fatalf("WriteManifest() error: %v", err)
	}
	got, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest() error: %v", err)
	}
	if got.RunID != m.RunID || got.Packages != 2 || got.Errors != 1 || !got.CreatedAt.Equal(m.CreatedAt) {
		t.Errorf("ReadManifest() = %+v", got)
	}

	gm, ok := got.Graph("Depends")
	if !ok || gm.Edges != 1 || len(gm.Files) != 2 {
		t.Errorf("Graph(Depends) = %+v, %v", gm, ok)
	}
	if _, ok := got.Graph("Suggests"); ok {
		t.Error("Graph(Suggests) should be absent")
	}
}

func TestNewManifest(t *testing.T) {
	installed := graph.New(graph.Installed)
	installed.AddNode("bash")
	depends := graph.New("Depends")
	depends.AddEdge("libc6", "bash")

	now := time.Date(2026, 10, 16, 14, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	files := func(name string) []string { return []string{name + ".gv"} }
	m := NewManifest("run-1", 1, 0, []*graph.Graph{installed, depends}, files, now)

	if m.CreatedAt.Location() != time.UTC || !m.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v", m.CreatedAt)
	}
	if len(m.Graphs) != 2 {
		t.Fatalf("got %d graphs, want 2", len(m.Graphs))
	}
	if gm := m.Graphs[1]; gm.Name != "Depends" || gm.Nodes != 2 || gm.Edges != 1 || !slices.Equal(gm.Files, []string{"Depends.gv"}) {
		t.Errorf("Graphs[1] = %+v", gm)
	}

	if m := NewManifest("run-2", 0, 0, nil, nil, now); m.Graphs == nil || len(m.Graphs) != 0 {
		t.Errorf("empty manifest graphs = %#v", m.Graphs)
	}
}
