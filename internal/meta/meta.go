// Package meta implements the per-class metadata protocol that tracks the
// cheapest known expression of every equivalence class.
//
// Make computes metadata when a node is inserted, folding constant operands
// exactly where the evaluator allows. Merge picks the cheaper side when two
// classes unify. Modify adds the literal leaf of a class whose best
// expression is a leaf, so the class can be found by that literal. All three
// are pure with respect to their inputs, consult no clock or randomness, and
// never fail.
package meta

import (
	"math/big"

	"github.com/conduit-lang/eggmath/internal/eval"
	"github.com/conduit-lang/eggmath/internal/term"
)

// Meta is the metadata of one class. Cost always equals Best.Cost(), and
// over a class's lifetime Cost never increases.
type Meta struct {
	Cost term.Cost  `json:"cost"`
	Best *term.Expr `json:"-"`
}

// BestString renders Best as s-expression text
func (m Meta) BestString() string {
	return m.Best.String()
}

// Make computes the metadata of op applied to children whose metadata is
// given in order. When every child is best represented by a constant and the
// evaluator can fold op, the result is that constant at cost 0; a fold needs
// no comparison against the structural alternative because any operator
// costs at least 1.
func Make(op term.Op, children []Meta) Meta {
	if folded, ok := fold(op, children); ok {
		return Meta{Cost: term.Cost{}, Best: term.Leaf(term.Num(folded))}
	}

	bests := make([]*term.Expr, len(children))
	costs := make([]term.Cost, len(children))
	for i, c := range children {
		bests[i] = c.Best
		costs[i] = c.Cost
	}
	return Meta{
		Cost: term.CostOf(op, costs),
		Best: term.NewExpr(op, bests...),
	}
}

func fold(op term.Op, children []Meta) (*big.Rat, bool) {
	if op.IsLeaf() {
		return nil, false
	}
	args := make([]*big.Rat, len(children))
	for i, c := range children {
		if c.Best == nil || !c.Best.Op.IsConstant() {
			return nil, false
		}
		args[i] = c.Best.Op.Value
	}
	return eval.Evaluate(op, args)
}

// Merge returns the cheaper of a and b. On equal cost a wins; callers pass
// the metadata of the pre-existing class first so results do not depend on
// the order in which rules fire.
func Merge(a, b Meta) Meta {
	if b.Cost.Less(a.Cost) {
		return b
	}
	return a
}

// Class is the view of an equivalence class that Modify works on
type Class interface {
	// Metadata returns the class's current metadata
	Metadata() Meta
	// Contains reports whether the class holds a childless node equal to op
	Contains(op term.Op) bool
	// Insert adds a childless node for op to the class
	Insert(op term.Op)
}

// Modify inserts the class's best expression as a node when that expression
// is a leaf the class does not already contain. Non-leaf expressions are
// never inserted, which keeps bookkeeping from growing the graph. Applying
// Modify twice has the same effect as applying it once.
func Modify(c Class) {
	best := c.Metadata().Best
	if best == nil || !best.IsLeaf() || len(best.Children) > 0 {
		return
	}
	if c.Contains(best.Op) {
		return
	}
	c.Insert(best.Op)
}
