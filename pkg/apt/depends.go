package apt

import (
	"regexp"
	"strings"

	"github.com/matzehuels/aptgraph/pkg/errors"
)

// Edge is one observed relation, directed from the package that is needed
// (or offered as an alternative) to the package that needs it.
type Edge struct {
	Relation Relation
	From     string
	To       string
}

// relationLineRe matches a relation declaration such as
// "Depends: libc6" or "|Recommends: foo (>= 1.0)".
var relationLineRe = regexp.MustCompile(
	`^\|?(Depends|PreDepends|Recommends|Suggests|Enhances|Breaks|Conflicts|Replaces):\s*(.*)$`)

// orGroup is the parser state carried from line to line. The zero value
// means no relation line has been seen yet.
type orGroup struct {
	relation Relation
	last     string
}

func (g orGroup) open() bool { return g.relation != "" }

// ParseDepends parses the "apt-cache depends" output for pkg into edges.
//
// A relation line "R: dep" yields dep -> pkg in relation R. A bare line
// following it names an alternative in the same OR group and is linked in
// both directions to the package on the line just before it; earlier
// alternatives are not linked to it. Lines equal to pkg itself and blank
// lines are skipped.
//
// A bare line that appears before any relation line returns an error with
// code [errors.ErrCodeMalformedLine] and no edges.
func ParseDepends(dump, pkg string) ([]Edge, error) {
	var (
		edges []Edge
		group orGroup
	)

	for i, raw := range strings.Split(dump, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line == pkg {
			continue
		}

		if m := relationLineRe.FindStringSubmatch(line); m != nil {
			target := firstField(m[2])
			if target == "" {
				return nil, errors.New(errors.ErrCodeMalformedLine,
					"%s: line %d: relation %s without a package", pkg, i+1, m[1])
			}
			group = orGroup{relation: Relation(m[1]), last: target}
			edges = append(edges, Edge{Relation: group.relation, From: target, To: pkg})
			continue
		}

		if !group.open() {
			return nil, errors.New(errors.ErrCodeMalformedLine,
				"%s: line %d: alternative %q precedes any relation", pkg, i+1, line)
		}
		edges = append(edges,
			Edge{Relation: group.relation, From: line, To: group.last},
			Edge{Relation: group.relation, From: group.last, To: line},
		)
		group.last = line
	}

	return edges, nil
}

// firstField returns the package token of a relation value, dropping any
// trailing annotation such as a version constraint.
func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
