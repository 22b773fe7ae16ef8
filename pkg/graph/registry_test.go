package graph

import (
	"context"
	"errors"
	"slices"
	"testing"

	aerrors "github.com/matzehuels/aptgraph/pkg/errors"
)

type recordingSink struct {
	persisted []string
	rendered  []string
	failOn    string
}

func (s *recordingSink) Persist(_ context.Context, _ string, g *Graph) error {
	s.persisted = append(s.persisted, g.Name())
	if g.Name() == s.failOn {
		return errors.New("disk full")
	}
	return nil
}

func (s *recordingSink) Render(_ context.Context, _ string, g *Graph) error {
	s.rendered = append(s.rendered, g.Name())
	if g.Name() == s.failOn {
		return errors.New("graphviz crashed")
	}
	return nil
}

func TestRegistryGetReturnsSameInstance(t *testing.T) {
	r := NewRegistry(t.TempDir(), nil)

	a := r.Get("Depends")
	b := r.Get("Depends")
	if a != b {
		t.Error("Get() should return the same graph for the same name")
	}
	if r.Get("Suggests") == a {
		t.Error("different names should yield different graphs")
	}
	if r.Installed() != r.Get(Installed) {
		t.Error("Installed() should return the Installed graph")
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestRegistryLookupDoesNotCreate(t *testing.T) {
	r := NewRegistry("out", nil)

	if _, ok := r.Lookup("Depends"); ok {
		t.Error("Lookup() found a graph that was never created")
	}
	if r.Len() != 0 {
		t.Errorf("Lookup() created a graph, Len() = %d", r.Len())
	}
	r.Get("Depends")
	if _, ok := r.Lookup("Depends"); !ok {
		t.Error("Lookup() should find a created graph")
	}
	if r.Dir() != "out" {
		t.Errorf("Dir() = %q", r.Dir())
	}
}

func TestRegistryCreationOrder(t *testing.T) {
	r := NewRegistry("out", nil)
	for _, n := range []string{Installed, "Depends", "PreDepends", "Depends"} {
		r.Get(n)
	}

	if want := []string{Installed, "Depends", "PreDepends"}; !slices.Equal(r.Names(), want) {
		t.Errorf("Names() = %v, want %v", r.Names(), want)
	}
	for i, g := range r.Graphs() {
		if g.Name() != r.Names()[i] {
			t.Errorf("Graphs()[%d] = %s, want %s", i, g.Name(), r.Names()[i])
		}
	}
}

func TestRegistryContinuesAfterFailure(t *testing.T) {
	sink := &recordingSink{failOn: "Depends"}
	r := NewRegistry("out", sink)
	r.Get(Installed)
	r.Get("Depends")
	r.Get("Suggests")

	ctx := context.Background()
	persistErr := r.PersistAll(ctx)
	renderErr := r.RenderAll(ctx)

	want := []string{Installed, "Depends", "Suggests"}
	if !slices.Equal(sink.persisted, want) {
		t.Errorf("persisted = %v, want %v", sink.persisted, want)
	}
	if !slices.Equal(sink.rendered, want) {
		t.Errorf("rendered = %v, want %v", sink.rendered, want)
	}

	for _, err := range []error{persistErr, renderErr} {
		if err == nil {
			t.Fatal("expected an error for the failing graph")
		}
		if !aerrors.Is(err, aerrors.ErrCodeRender) {
			t.Errorf("error %v should carry %s", err, aerrors.ErrCodeRender)
		}
	}
}

func TestRegistryNoFailures(t *testing.T) {
	sink := &recordingSink{}
	r := NewRegistry("out", sink)
	r.Get("Depends")

	if err := r.PersistAll(context.Background()); err != nil {
		t.Errorf("PersistAll() error: %v", err)
	}
	if err := r.RenderAll(context.Background()); err != nil {
		t.Errorf("RenderAll() error: %v", err)
	}
}

func TestMultiSinkAttemptsAll(t *testing.T) {
	first := &recordingSink{failOn: "Depends"}
	second := &recordingSink{}
	m := MultiSink{first, second}

	err := m.Persist(context.Background(), "out", New("Depends"))
	if err == nil {
		t.Error("MultiSink.Persist() should report the first sink's failure")
	}
	if len(second.persisted) != 1 {
		t.Error("second sink should still be called")
	}
}
