package term

import "strings"

// Expr is an immutable expression tree. The engine records the cheapest known
// tree per class as an Expr; it is never used as live graph storage, so
// subtrees may be shared freely.
type Expr struct {
	Op       Op
	Children []*Expr
}

// Leaf returns a childless expression
func Leaf(op Op) *Expr {
	return &Expr{Op: op}
}

// NewExpr returns op applied to children
func NewExpr(op Op, children ...*Expr) *Expr {
	return &Expr{Op: op, Children: children}
}

// Apply returns the fixed-name kind k applied to children
func Apply(k Kind, children ...*Expr) *Expr {
	return &Expr{Op: OpOf(k), Children: children}
}

// IsLeaf reports whether the root is a payload leaf
func (e *Expr) IsLeaf() bool {
	return e.Op.IsLeaf()
}

// Cost evaluates the cost model over the whole tree
func (e *Expr) Cost() Cost {
	costs := make([]Cost, len(e.Children))
	for i, c := range e.Children {
		costs[i] = c.Cost()
	}
	return CostOf(e.Op, costs)
}

// Size returns the number of nodes in the tree
func (e *Expr) Size() int {
	n := 1
	for _, c := range e.Children {
		n += c.Size()
	}
	return n
}

// Equal compares two trees structurally
func (e *Expr) Equal(other *Expr) bool {
	if e == nil || other == nil {
		return e == other
	}
	if !e.Op.Equal(other.Op) || len(e.Children) != len(other.Children) {
		return false
	}
	for i := range e.Children {
		if !e.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree as s-expression text, e.g. "(+ x 1/2)"
func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	if e == nil {
		b.WriteString("<nil>")
		return
	}
	if len(e.Children) == 0 && e.Op.IsLeaf() {
		b.WriteString(e.Op.String())
		return
	}
	b.WriteByte('(')
	b.WriteString(e.Op.String())
	for _, c := range e.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}
