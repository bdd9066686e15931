package term

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/eggmath/internal/errors"
)

func TestDefaultVocabularyIsValid(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, len(Kinds())+len(FPConstants()), v.Len())
}

func TestEveryKindRoundTripsThroughItsName(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)

	for _, k := range Kinds() {
		op, ok := v.Lookup(k.String())
		require.True(t, ok, "kind %d has no entry", k)
		assert.Equal(t, k, op.Kind)

		name, ok := v.byKey[op.Key()]
		require.True(t, ok)
		assert.Equal(t, k.String(), name)
	}

	for _, c := range FPConstants() {
		op, ok := v.Lookup(c.String())
		require.True(t, ok, "constant %d has no entry", c)
		assert.True(t, op.Equal(FP(c)))
	}
}

func TestLookupKnownNames(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name string
		want Op
	}{
		{"+", OpOf(Add)},
		{"-", OpOf(Sub)},
		{"+.c", OpOf(AddC)},
		{"+.p16", OpOf(PositAdd)},
		{"real->posit", OpOf(RealToPosit)},
		{"neg", OpOf(Neg)},
		{"<=", OpOf(LessEq)},
		{"PI", FP(FPPi)},
		{"1_PI", FP(FPOneOverPi)},
		{"SQRT1_2", FP(FPSqrtHalf)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.Lookup(tt.name)
			require.True(t, ok)
			assert.True(t, got.Equal(tt.want), "got %v", got)
		})
	}

	_, ok := v.Lookup("x")
	assert.False(t, ok)
}

func TestNewVocabularyRejectsDuplicateNames(t *testing.T) {
	entries := []Entry{
		{Name: "+", Op: OpOf(Add)},
		{Name: "*", Op: OpOf(Mul)},
		{Name: "+", Op: OpOf(PositAdd)},
	}

	v, err := NewVocabulary(entries)
	assert.Nil(t, v)
	require.Error(t, err)

	var list errors.ErrorList
	require.True(t, stderrors.As(err, &list))
	require.Len(t, list, 1)
	assert.Equal(t, errors.ErrDuplicateName, list[0].Code)
	assert.Equal(t, "+", list[0].Snippet)
	assert.Contains(t, list[0].Message, "operator +.p16")
}

func TestNewVocabularyRejectsAliases(t *testing.T) {
	_, err := NewVocabulary([]Entry{
		{Name: "sqrt", Op: OpOf(Sqrt)},
		{Name: "root", Op: OpOf(Sqrt)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VOC001")
}

func TestNewVocabularyRejectsUnusableNames(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"empty", Entry{Name: "", Op: OpOf(Add)}},
		{"pattern variable", Entry{Name: "?x", Op: OpOf(Add)}},
		{"whitespace", Entry{Name: "a b", Op: OpOf(Add)}},
		{"paren", Entry{Name: "f(", Op: OpOf(Add)}},
		{"rational", Entry{Name: "1/2", Op: OpOf(Add)}},
		{"payload kind", Entry{Name: "x", Op: Sym("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVocabulary([]Entry{tt.entry})
			require.Error(t, err)

			var list errors.ErrorList
			require.True(t, stderrors.As(err, &list))
			assert.Equal(t, errors.ErrInvalidName, list[0].Code)
		})
	}
}

func TestNamesAreSorted(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)

	names := v.Names()
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}
