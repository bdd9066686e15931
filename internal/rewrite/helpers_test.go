package rewrite

import (
	"github.com/conduit-lang/eggmath/internal/egraph"
	"github.com/conduit-lang/eggmath/internal/meta"
	"github.com/conduit-lang/eggmath/internal/term"
)

func leafNode(op term.Op) egraph.Node {
	return egraph.Leaf(op)
}

// leafApply builds the node k(a, b) over the classes of two variables
func leafApply(g *meta.Graph, k term.Kind, a, b string) egraph.Node {
	ca, _ := g.Lookup(egraph.Leaf(term.Sym(a)))
	cb, _ := g.Lookup(egraph.Leaf(term.Sym(b)))
	return egraph.Node{Op: term.OpOf(k), Children: []egraph.ClassID{ca, cb}}
}
