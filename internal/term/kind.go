// Package term defines the vocabulary of the math term language: operator
// tags, named floating-point constants, expression trees, and the structural
// cost model used to rank equivalent expressions.
package term

// Kind is the operator tag of a term node. The set is closed; Constant,
// Variable and NamedConstant carry a payload on Op and are always leaves.
type Kind uint8

const (
	// Constant is an exact rational literal
	Constant Kind = iota
	// Variable is a free identifier
	Variable
	// NamedConstant is an opaque floating-point constant such as PI or NAN
	NamedConstant

	// Complex operators
	Re
	Im
	Complex
	Conj
	AddC
	SubC
	NegC
	DivC
	MulC

	// FPCore special functions
	Erf
	Erfc
	Tgamma
	Lgamma
	Ceil
	Floor
	Fmod
	Remainder
	Fmax
	Fmin
	Fdim
	Copysign
	Trunc
	Round
	NearbyInt

	// Arithmetic and transcendental operators
	Add
	Sub
	Mul
	Div
	Pow
	Exp
	Exp2
	Log
	Sqrt
	Cbrt
	Fabs
	Sin
	Cos
	Tan
	Asin
	Acos
	Atan
	Atan2
	Sinh
	Cosh
	Tanh
	Asinh
	Acosh
	Atanh
	Fma
	Log1p
	Log10
	Log2
	Expm1
	Hypot

	// 16-bit posit arithmetic
	PositAdd
	PositSub
	PositMul
	PositDiv
	RealToPosit

	// Negation, boolean, comparison and conditional operators used by the
	// rewrite corpus
	Neg
	Not
	And
	Or
	If
	Less
	Greater
	LessEq
	GreaterEq

	numKinds
)

// kindNames holds the canonical text of every fixed-name kind. Payload kinds
// have no name of their own.
var kindNames = [numKinds]string{
	Re:      "re",
	Im:      "im",
	Complex: "complex",
	Conj:    "conj",
	AddC:    "+.c",
	SubC:    "-.c",
	NegC:    "neg.c",
	DivC:    "/.c",
	MulC:    "*.c",

	Erf:       "erf",
	Erfc:      "erfc",
	Tgamma:    "tgamma",
	Lgamma:    "lgamma",
	Ceil:      "ceil",
	Floor:     "floor",
	Fmod:      "fmod",
	Remainder: "remainder",
	Fmax:      "fmax",
	Fmin:      "fmin",
	Fdim:      "fdim",
	Copysign:  "copysign",
	Trunc:     "trunc",
	Round:     "round",
	NearbyInt: "nearbyint",

	Add:   "+",
	Sub:   "-",
	Mul:   "*",
	Div:   "/",
	Pow:   "pow",
	Exp:   "exp",
	Exp2:  "exp2",
	Log:   "log",
	Sqrt:  "sqrt",
	Cbrt:  "cbrt",
	Fabs:  "fabs",
	Sin:   "sin",
	Cos:   "cos",
	Tan:   "tan",
	Asin:  "asin",
	Acos:  "acos",
	Atan:  "atan",
	Atan2: "atan2",
	Sinh:  "sinh",
	Cosh:  "cosh",
	Tanh:  "tanh",
	Asinh: "asinh",
	Acosh: "acosh",
	Atanh: "atanh",
	Fma:   "fma",
	Log1p: "log1p",
	Log10: "log10",
	Log2:  "log2",
	Expm1: "expm1",
	Hypot: "hypot",

	PositAdd:    "+.p16",
	PositSub:    "-.p16",
	PositMul:    "*.p16",
	PositDiv:    "/.p16",
	RealToPosit: "real->posit",

	Neg:       "neg",
	Not:       "not",
	And:       "and",
	Or:        "or",
	If:        "if",
	Less:      "<",
	Greater:   ">",
	LessEq:    "<=",
	GreaterEq: ">=",
}

// IsLeaf reports whether the kind is one of the payload leaves
func (k Kind) IsLeaf() bool {
	return k == Constant || k == Variable || k == NamedConstant
}

// Valid reports whether k is a member of the closed tag set
func (k Kind) Valid() bool {
	return k < numKinds
}

// String returns the canonical name, or a descriptive label for payload kinds
func (k Kind) String() string {
	switch k {
	case Constant:
		return "<constant>"
	case Variable:
		return "<variable>"
	case NamedConstant:
		return "<named-constant>"
	}
	if !k.Valid() {
		return "<invalid>"
	}
	return kindNames[k]
}

// Kinds returns every fixed-name kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, int(numKinds)-3)
	for k := NamedConstant + 1; k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// FPConstant is a symbolic floating-point constant. These leaves are never
// evaluated to a rational.
type FPConstant uint8

const (
	FPTrue FPConstant = iota
	FPFalse
	FPE
	FPLog2E
	FPLog10E
	FPLn2
	FPLn10
	FPPi
	FPPiOver2
	FPPiOver4
	FPOneOverPi
	FPTwoOverPi
	FPTwoOverSqrtPi
	FPSqrt2
	FPSqrtHalf
	FPInfinity
	FPNaN

	numFPConstants
)

var fpConstantNames = [numFPConstants]string{
	FPTrue:          "TRUE",
	FPFalse:         "FALSE",
	FPE:             "E",
	FPLog2E:         "LOG2E",
	FPLog10E:        "LOG10E",
	FPLn2:           "LN2",
	FPLn10:          "LN10",
	FPPi:            "PI",
	FPPiOver2:       "PI_2",
	FPPiOver4:       "PI_4",
	FPOneOverPi:     "1_PI",
	FPTwoOverPi:     "2_PI",
	FPTwoOverSqrtPi: "2_SQRTPI",
	FPSqrt2:         "SQRT2",
	FPSqrtHalf:      "SQRT1_2",
	FPInfinity:      "INFINITY",
	FPNaN:           "NAN",
}

// String returns the constant's canonical name
func (c FPConstant) String() string {
	if c >= numFPConstants {
		return "<invalid>"
	}
	return fpConstantNames[c]
}

// FPConstants returns every named constant in declaration order
func FPConstants() []FPConstant {
	consts := make([]FPConstant, 0, numFPConstants)
	for c := FPConstant(0); c < numFPConstants; c++ {
		consts = append(consts, c)
	}
	return consts
}
