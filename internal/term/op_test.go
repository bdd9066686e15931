package term

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafEquality(t *testing.T) {
	assert.True(t, Sym("x").Equal(Sym("x")))
	assert.False(t, Sym("x").Equal(Sym("y")))
	assert.True(t, Frac(1, 2).Equal(Frac(2, 4)))
	assert.False(t, Frac(1, 2).Equal(Int(1)))
	assert.True(t, FP(FPPi).Equal(FP(FPPi)))
	assert.False(t, FP(FPPi).Equal(FP(FPE)))
	assert.False(t, Int(0).Equal(Sym("0")))
	assert.True(t, OpOf(Add).Equal(OpOf(Add)))
	assert.False(t, OpOf(Add).Equal(OpOf(Sub)))
}

func TestKeyAgreesWithEqual(t *testing.T) {
	ops := []Op{
		Int(0), Int(1), Frac(1, 2), Frac(-1, 2), Sym("x"), Sym("y"), Sym("1"),
		FP(FPPi), FP(FPE), OpOf(Add), OpOf(Sub), OpOf(Neg),
	}

	for _, a := range ops {
		for _, b := range ops {
			assert.Equal(t, a.Equal(b), a.Key() == b.Key(), "%v vs %v", a, b)
		}
	}

	assert.Equal(t, Frac(3, 6).Key(), Frac(1, 2).Key())
}

func TestNumCopiesItsArgument(t *testing.T) {
	r := big.NewRat(3, 4)
	op := Num(r)
	r.SetInt64(9)
	assert.Equal(t, "3/4", op.String())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "-3/4", Frac(-3, 4).String())
	assert.Equal(t, "2", Int(2).String())
	assert.Equal(t, "x", Sym("x").String())
	assert.Equal(t, "NAN", FP(FPNaN).String())
	assert.Equal(t, "real->posit", OpOf(RealToPosit).String())
}

func TestKindIsLeaf(t *testing.T) {
	assert.True(t, Constant.IsLeaf())
	assert.True(t, Variable.IsLeaf())
	assert.True(t, NamedConstant.IsLeaf())
	for _, k := range Kinds() {
		assert.False(t, k.IsLeaf(), "%s", k)
	}
}
