// Package eval folds operators over exact rational operands.
//
// Only operators whose result is always an exact rational are folded. Pow,
// Exp, Log, Sqrt, Cbrt and the other transcendental or special functions are
// deliberately left alone even for rational inputs, as are complex, posit
// arithmetic, boolean, comparison and conditional operators.
package eval

import (
	"math/big"

	"github.com/conduit-lang/eggmath/internal/term"
)

// Evaluate returns op applied to args, or false when the operator is not
// foldable, an operand is missing, or the result is undefined (a zero
// divisor). Arguments are never modified and the result is always a fresh
// value.
func Evaluate(op term.Op, args []*big.Rat) (*big.Rat, bool) {
	arg := func(i int) (*big.Rat, bool) {
		if i >= len(args) || args[i] == nil {
			return nil, false
		}
		return args[i], true
	}

	switch op.Kind {
	case term.Add, term.Sub, term.Mul, term.Div:
		a, ok := arg(0)
		if !ok {
			return nil, false
		}
		b, ok := arg(1)
		if !ok {
			return nil, false
		}
		return binary(op.Kind, a, b)

	case term.Fabs:
		a, ok := arg(0)
		if !ok {
			return nil, false
		}
		return new(big.Rat).Abs(a), true

	case term.Neg:
		a, ok := arg(0)
		if !ok {
			return nil, false
		}
		return new(big.Rat).Neg(a), true

	case term.RealToPosit:
		// conversion to a posit is modelled as the identity on exact values
		a, ok := arg(0)
		if !ok {
			return nil, false
		}
		return new(big.Rat).Set(a), true
	}

	return nil, false
}

func binary(k term.Kind, a, b *big.Rat) (*big.Rat, bool) {
	switch k {
	case term.Add:
		return new(big.Rat).Add(a, b), true
	case term.Sub:
		return new(big.Rat).Sub(a, b), true
	case term.Mul:
		return new(big.Rat).Mul(a, b), true
	case term.Div:
		if b.Sign() == 0 {
			return nil, false
		}
		return new(big.Rat).Quo(a, b), true
	}
	return nil, false
}

// Foldable reports whether Evaluate can ever produce a value for op
func Foldable(op term.Op) bool {
	switch op.Kind {
	case term.Add, term.Sub, term.Mul, term.Div, term.Fabs, term.Neg, term.RealToPosit:
		return true
	}
	return false
}
