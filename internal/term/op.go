package term

import (
	"math/big"
	"strconv"
	"strings"
)

// Op is an operator tag together with its payload. Only the field matching
// Kind is meaningful: Value for Constant, Name for Variable, Symbol for
// NamedConstant.
type Op struct {
	Kind   Kind
	Value  *big.Rat
	Name   string
	Symbol FPConstant
}

// OpOf returns the payload-free op for a fixed-name kind
func OpOf(k Kind) Op {
	return Op{Kind: k}
}

// Num returns a Constant op holding a copy of r
func Num(r *big.Rat) Op {
	return Op{Kind: Constant, Value: new(big.Rat).Set(r)}
}

// Int returns a Constant op for an integer
func Int(n int64) Op {
	return Op{Kind: Constant, Value: new(big.Rat).SetInt64(n)}
}

// Frac returns a Constant op for p/q. q must be non-zero.
func Frac(p, q int64) Op {
	return Op{Kind: Constant, Value: big.NewRat(p, q)}
}

// Sym returns a Variable op
func Sym(name string) Op {
	return Op{Kind: Variable, Name: name}
}

// FP returns a NamedConstant op
func FP(c FPConstant) Op {
	return Op{Kind: NamedConstant, Symbol: c}
}

// IsLeaf reports whether the op is a zero-arity payload leaf
func (o Op) IsLeaf() bool {
	return o.Kind.IsLeaf()
}

// IsConstant reports whether the op is an exact rational literal
func (o Op) IsConstant() bool {
	return o.Kind == Constant && o.Value != nil
}

// Equal compares tag and payload
func (o Op) Equal(other Op) bool {
	if o.Kind != other.Kind {
		return false
	}
	switch o.Kind {
	case Constant:
		if o.Value == nil || other.Value == nil {
			return o.Value == other.Value
		}
		return o.Value.Cmp(other.Value) == 0
	case Variable:
		return o.Name == other.Name
	case NamedConstant:
		return o.Symbol == other.Symbol
	}
	return true
}

// Key returns a canonical string such that a.Key() == b.Key() iff a.Equal(b).
// The engine hash-conses on it.
func (o Op) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(o.Kind)))
	switch o.Kind {
	case Constant:
		b.WriteByte(':')
		if o.Value != nil {
			b.WriteString(o.Value.RatString())
		}
	case Variable:
		// length-prefixed; identifiers may contain any byte
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(len(o.Name)))
		b.WriteByte(':')
		b.WriteString(o.Name)
	case NamedConstant:
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(o.Symbol)))
	}
	return b.String()
}

// String returns the op as it appears in s-expression text
func (o Op) String() string {
	switch o.Kind {
	case Constant:
		if o.Value == nil {
			return "<nil>"
		}
		return o.Value.RatString()
	case Variable:
		return o.Name
	case NamedConstant:
		return o.Symbol.String()
	}
	return o.Kind.String()
}
