package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/eggmath/internal/term"
)

func leaf(op term.Op) Meta {
	return Make(op, nil)
}

func costOf(t *testing.T, m Meta) uint64 {
	t.Helper()
	n, ok := m.Cost.Uint64()
	require.True(t, ok)
	return n
}

func TestMakeLeaves(t *testing.T) {
	for _, op := range []term.Op{term.Int(1), term.Frac(-1, 2), term.Sym("x"), term.FP(term.FPPi)} {
		m := leaf(op)
		assert.True(t, m.Cost.IsZero())
		assert.True(t, m.Best.Equal(term.Leaf(op)))
	}
}

func TestMakeFoldsConstants(t *testing.T) {
	m := Make(term.OpOf(term.Add), []Meta{leaf(term.Int(1)), leaf(term.Int(2))})

	assert.Equal(t, "3", m.BestString())
	assert.True(t, m.Cost.IsZero())
	assert.True(t, m.Best.IsLeaf())
}

func TestMakeFoldsNestedThroughChildren(t *testing.T) {
	half := Make(term.OpOf(term.Div), []Meta{leaf(term.Int(1)), leaf(term.Int(2))})
	abs := Make(term.OpOf(term.Fabs), []Meta{Make(term.OpOf(term.Neg), []Meta{half})})

	assert.Equal(t, "1/2", abs.BestString())
	assert.True(t, abs.Cost.IsZero())
}

func TestMakeDoesNotFoldSqrt(t *testing.T) {
	m := Make(term.OpOf(term.Sqrt), []Meta{leaf(term.Int(4))})

	assert.Equal(t, "(sqrt 4)", m.BestString())
	assert.Equal(t, uint64(1), costOf(t, m))
}

func TestMakeDivisionByZeroComposes(t *testing.T) {
	m := Make(term.OpOf(term.Div), []Meta{leaf(term.Int(1)), leaf(term.Int(0))})

	assert.Equal(t, "(/ 1 0)", m.BestString())
	assert.Equal(t, uint64(1), costOf(t, m))
}

func TestMakeWithVariableComposes(t *testing.T) {
	inner := Make(term.OpOf(term.Mul), []Meta{leaf(term.Sym("x")), leaf(term.Int(2))})
	outer := Make(term.OpOf(term.Add), []Meta{inner, leaf(term.Int(1))})

	assert.Equal(t, "(+ (* x 2) 1)", outer.BestString())
	assert.Equal(t, uint64(2), costOf(t, outer))
	assert.Equal(t, 0, outer.Cost.Cmp(outer.Best.Cost()), "cost must equal the cost of best")
}

func TestMakeNamedConstantsAreOpaque(t *testing.T) {
	m := Make(term.OpOf(term.Add), []Meta{leaf(term.FP(term.FPPi)), leaf(term.Int(1))})
	assert.Equal(t, "(+ PI 1)", m.BestString())
}

func TestMakeMissingOperandComposes(t *testing.T) {
	m := Make(term.OpOf(term.Sub), []Meta{leaf(term.Int(1))})
	assert.Equal(t, "(- 1)", m.BestString())
	assert.Equal(t, uint64(1), costOf(t, m))
}

func TestMergeIdempotent(t *testing.T) {
	a := Make(term.OpOf(term.Exp), []Meta{leaf(term.Sym("x"))})
	got := Merge(a, a)
	assert.Same(t, a.Best, got.Best)
	assert.Equal(t, 0, got.Cost.Cmp(a.Cost))
}

func TestMergeTakesMinimum(t *testing.T) {
	x := leaf(term.Sym("x"))
	sum := Make(term.OpOf(term.Add), []Meta{leaf(term.Int(0)), x})
	product := Make(term.OpOf(term.Mul), []Meta{sum, leaf(term.Sym("y"))})
	metas := []Meta{x, sum, product}

	for _, a := range metas {
		for _, b := range metas {
			got := Merge(a, b)
			want := a.Cost
			if b.Cost.Less(a.Cost) {
				want = b.Cost
			}
			assert.Equal(t, 0, got.Cost.Cmp(want))
		}
	}
}

func TestMergeTieKeepsFirst(t *testing.T) {
	a := leaf(term.Sym("x"))
	b := leaf(term.Int(7))

	assert.Same(t, a.Best, Merge(a, b).Best)
	assert.Same(t, b.Best, Merge(b, a).Best)
}

type fakeClass struct {
	meta  Meta
	nodes []term.Op
}

func (f *fakeClass) Metadata() Meta { return f.meta }

func (f *fakeClass) Contains(op term.Op) bool {
	for _, n := range f.nodes {
		if n.Equal(op) {
			return true
		}
	}
	return false
}

func (f *fakeClass) Insert(op term.Op) { f.nodes = append(f.nodes, op) }

func TestModifyInsertsLeafOnce(t *testing.T) {
	c := &fakeClass{
		meta:  Make(term.OpOf(term.Add), []Meta{leaf(term.Int(1)), leaf(term.Int(2))}),
		nodes: []term.Op{term.OpOf(term.Add)},
	}

	Modify(c)
	require.Len(t, c.nodes, 2)
	assert.True(t, c.nodes[1].Equal(term.Int(3)))

	Modify(c)
	assert.Len(t, c.nodes, 2)
}

func TestModifyIgnoresNonLeafBest(t *testing.T) {
	c := &fakeClass{
		meta:  Make(term.OpOf(term.Sqrt), []Meta{leaf(term.Int(2))}),
		nodes: []term.Op{term.OpOf(term.Sqrt)},
	}
	Modify(c)
	assert.Len(t, c.nodes, 1)
}

func TestModifyInsertsVariableAndNamedConstantLeaves(t *testing.T) {
	for _, op := range []term.Op{term.Sym("x"), term.FP(term.FPNaN)} {
		c := &fakeClass{meta: leaf(op)}
		Modify(c)
		require.Len(t, c.nodes, 1)
		assert.True(t, c.nodes[0].Equal(op))
	}
}
