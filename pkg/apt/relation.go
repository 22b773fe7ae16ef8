package apt

import (
	"slices"
	"strings"

	"github.com/matzehuels/aptgraph/pkg/errors"
)

// Relation is a dependency relation kind as printed by apt-cache.
// Each relation gets its own graph.
type Relation string

const (
	Depends    Relation = "Depends"
	PreDepends Relation = "PreDepends"
	Recommends Relation = "Recommends"
	Suggests   Relation = "Suggests"
	Enhances   Relation = "Enhances"
	Breaks     Relation = "Breaks"
	Conflicts  Relation = "Conflicts"
	Replaces   Relation = "Replaces"
)

// Relations lists every relation kind in a stable order.
var Relations = []Relation{
	Depends,
	PreDepends,
	Recommends,
	Suggests,
	Enhances,
	Breaks,
	Conflicts,
	Replaces,
}

// String returns the relation name.
func (r Relation) String() string { return string(r) }

// Valid reports whether r is one of the known relation kinds.
func (r Relation) Valid() bool { return slices.Contains(Relations, r) }

// ParseRelation converts a relation name into a Relation. A leading "|"
// (the OR-group marker) is accepted and dropped.
func ParseRelation(s string) (Relation, error) {
	r := Relation(strings.TrimPrefix(strings.TrimSpace(s), "|"))
	if !r.Valid() {
		return "", errors.New(errors.ErrCodeInvalidRelation, "unknown relation %q", s)
	}
	return r, nil
}

// ParseRelations parses a list of relation names. An empty list is valid and
// means "all relations".
func ParseRelations(names []string) ([]Relation, error) {
	out := make([]Relation, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		r, err := ParseRelation(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out, nil
}
