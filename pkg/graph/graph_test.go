package graph

import (
	"slices"
	"testing"
)

func TestAddEdgeIsIdempotent(t *testing.T) {
	g := New("Depends")

	if !g.AddEdge("a", "b") {
		t.Error("first AddEdge(a, b) should report added")
	}
	if g.AddEdge("a", "b") {
		t.Error("second AddEdge(a, b) should be a no-op")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}

	if !g.AddEdge("b", "a") {
		t.Error("AddEdge(b, a) should add a distinct edge")
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if !g.HasEdge("a", "b") || !g.HasEdge("b", "a") {
		t.Error("both directions should be present")
	}
}

func TestAddEdgeInsertsNodes(t *testing.T) {
	g := New("Depends")
	g.AddEdge("libc6", "bash")

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", g.NodeCount())
	}

	if g.AddNode("bash") {
		t.Error("AddNode(bash) after AddEdge should be a no-op")
	}
	if g.AddNode("libc6") {
		t.Error("AddNode(libc6) after AddEdge should be a no-op")
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d after re-adding, want 2", g.NodeCount())
	}
}

func TestAddNode(t *testing.T) {
	g := New(Installed)
	for _, n := range []string{"bash", "coreutils", "bash", "dash", "coreutils"} {
		g.AddNode(n)
	}

	if want := []string{"bash", "coreutils", "dash"}; !slices.Equal(g.Nodes(), want) {
		t.Errorf("Nodes() = %v, want %v", g.Nodes(), want)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if !g.HasNode("dash") || g.HasNode("zsh") {
		t.Error("HasNode() mismatch")
	}
}

func TestInsertionOrder(t *testing.T) {
	g := New("Recommends")
	g.AddEdge("c", "a")
	g.AddEdge("b", "a")
	g.AddEdge("c", "a")

	want := []Edge{{From: "c", To: "a"}, {From: "b", To: "a"}}
	if !slices.Equal(g.Edges(), want) {
		t.Errorf("Edges() = %v, want %v", g.Edges(), want)
	}
	if wantNodes := []string{"c", "a", "b"}; !slices.Equal(g.Nodes(), wantNodes) {
		t.Errorf("Nodes() = %v, want %v", g.Nodes(), wantNodes)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := New("Depends")
	g.AddEdge("a", "b")

	nodes := g.Nodes()
	nodes[0] = "mutated"
	edges := g.Edges()
	edges[0].From = "mutated"

	if g.Nodes()[0] != "a" || g.Edges()[0].From != "a" {
		t.Error("mutating returned slices should not affect the graph")
	}
}

func TestName(t *testing.T) {
	if got := New("Breaks").Name(); got != "Breaks" {
		t.Errorf("Name() = %q, want Breaks", got)
	}
}
