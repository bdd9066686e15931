package term

import "strings"

// Pattern is an expression tree whose leaves may be pattern variables. A
// node is either a variable (Var != "") or an op applied to sub-patterns.
type Pattern struct {
	Var      string
	Op       Op
	Children []*Pattern
}

// PVar returns a pattern variable. name excludes the leading '?'.
func PVar(name string) *Pattern {
	return &Pattern{Var: name}
}

// POp returns op applied to sub-patterns
func POp(op Op, children ...*Pattern) *Pattern {
	return &Pattern{Op: op, Children: children}
}

// IsVar reports whether the pattern is a bare variable
func (p *Pattern) IsVar() bool {
	return p.Var != ""
}

// Vars returns the variable names in first-occurrence order
func (p *Pattern) Vars() []string {
	seen := make(map[string]struct{})
	var out []string
	var walk func(*Pattern)
	walk = func(q *Pattern) {
		if q.IsVar() {
			if _, ok := seen[q.Var]; !ok {
				seen[q.Var] = struct{}{}
				out = append(out, q.Var)
			}
			return
		}
		for _, c := range q.Children {
			walk(c)
		}
	}
	walk(p)
	return out
}

// Ground converts a variable-free pattern into an expression
func (p *Pattern) Ground() (*Expr, bool) {
	if p.IsVar() {
		return nil, false
	}
	children := make([]*Expr, len(p.Children))
	for i, c := range p.Children {
		e, ok := c.Ground()
		if !ok {
			return nil, false
		}
		children[i] = e
	}
	return NewExpr(p.Op, children...), true
}

// String renders the pattern with variables written as ?name
func (p *Pattern) String() string {
	var b strings.Builder
	p.write(&b)
	return b.String()
}

func (p *Pattern) write(b *strings.Builder) {
	if p.IsVar() {
		b.WriteByte('?')
		b.WriteString(p.Var)
		return
	}
	if len(p.Children) == 0 && p.Op.IsLeaf() {
		b.WriteString(p.Op.String())
		return
	}
	b.WriteByte('(')
	b.WriteString(p.Op.String())
	for _, c := range p.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}
