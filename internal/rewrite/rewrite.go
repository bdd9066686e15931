package rewrite

import (
	"github.com/conduit-lang/eggmath/internal/egraph"
	"github.com/conduit-lang/eggmath/internal/errors"
	"github.com/conduit-lang/eggmath/internal/term"
)

// Rewrite states that anything matching LHS is equal to RHS under the same
// bindings
type Rewrite struct {
	Name string
	LHS  *term.Pattern
	RHS  *term.Pattern
}

// NewRewrite validates and builds a rewrite. The left side must not be a
// bare variable and the right side may only use variables the left binds.
func NewRewrite(name string, lhs, rhs *term.Pattern) (*Rewrite, error) {
	if lhs.IsVar() {
		return nil, errors.NewBareVariablePattern(name)
	}

	bound := make(map[string]struct{})
	for _, v := range lhs.Vars() {
		bound[v] = struct{}{}
	}
	for _, v := range rhs.Vars() {
		if _, ok := bound[v]; !ok {
			return nil, errors.NewUnboundVariable(name, "?"+v)
		}
	}

	return &Rewrite{Name: name, LHS: lhs, RHS: rhs}, nil
}

// String renders the rewrite as "name: lhs => rhs"
func (r *Rewrite) String() string {
	return r.Name + ": " + r.LHS.String() + " => " + r.RHS.String()
}

// Apply instantiates the right side for each match and unions it with the
// matched class. It returns how many unions changed the graph.
func Apply[D any](g *egraph.EGraph[D], r *Rewrite, matches []Match) int {
	changed := 0
	for _, m := range matches {
		id := Instantiate(g, r.RHS, m.Subst)
		if _, ok := g.Union(m.Class, id); ok {
			changed++
		}
	}
	return changed
}
