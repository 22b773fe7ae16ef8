package apt

import (
	"slices"
	"testing"

	"github.com/matzehuels/aptgraph/pkg/errors"
)

func TestParseRelation(t *testing.T) {
	tests := []struct {
		in      string
		want    Relation
		wantErr bool
	}{
		{"Depends", Depends, false},
		{"|Depends", Depends, false},
		{" PreDepends ", PreDepends, false},
		{"Replaces", Replaces, false},
		{"depends", "", true},
		{"Installed", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRelation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRelation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidRelation) {
			t.Errorf("ParseRelation(%q) code = %v", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseRelation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRelations(t *testing.T) {
	got, err := ParseRelations([]string{"Depends", "", "PreDepends", "Depends"})
	if err != nil {
		t.Fatalf("ParseRelations() error: %v", err)
	}
	if want := []Relation{Depends, PreDepends}; !slices.Equal(got, want) {
		t.Errorf("ParseRelations() = %v, want %v", got, want)
	}

	if _, err := ParseRelations([]string{"Depends", "Requires"}); err == nil {
		t.Error("ParseRelations() with unknown relation should fail")
	}
}

func TestRelationsAreValid(t *testing.T) {
	if len(Relations) != 8 {
		t.Fatalf("len(Relations) = %d, want 8", len(Relations))
	}
	for _, r := range Relations {
		if !r.Valid() {
			t.Errorf("%s.Valid() = false", r)
		}
	}
}
