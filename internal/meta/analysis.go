package meta

import (
	"github.com/conduit-lang/eggmath/internal/egraph"
	"github.com/conduit-lang/eggmath/internal/term"
)

// Graph is an e-graph carrying class metadata
type Graph = egraph.EGraph[Meta]

// Analysis plugs Make, Merge and Modify into the e-graph
type Analysis struct{}

// NewGraph returns an empty e-graph maintained by Analysis
func NewGraph() *Graph {
	return egraph.New[Meta](Analysis{})
}

// Make implements egraph.Analysis
func (Analysis) Make(g *Graph, n egraph.Node) Meta {
	children := make([]Meta, len(n.Children))
	for i, c := range n.Children {
		children[i] = g.Data(c)
	}
	return Make(n.Op, children)
}

// Merge implements egraph.Analysis. The result only differs from into when
// from is strictly cheaper.
func (Analysis) Merge(into, from Meta) (Meta, bool) {
	merged := Merge(into, from)
	return merged, from.Cost.Less(into.Cost)
}

// Modify implements egraph.Analysis
func (Analysis) Modify(g *Graph, id egraph.ClassID) {
	Modify(&graphClass{g: g, id: id})
}

type graphClass struct {
	g  *Graph
	id egraph.ClassID
}

func (c *graphClass) Metadata() Meta {
	return c.g.Data(c.id)
}

func (c *graphClass) Contains(op term.Op) bool {
	for _, n := range c.g.Nodes(c.id) {
		if n.IsLeaf() && n.Op.Equal(op) {
			return true
		}
	}
	return false
}

func (c *graphClass) Insert(op term.Op) {
	leaf := c.g.Add(egraph.Leaf(op))
	c.g.Union(c.id, leaf)
}
