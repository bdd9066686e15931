package rules

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/eggmath/internal/errors"
	"github.com/conduit-lang/eggmath/internal/term"
)

func vocab(t *testing.T) *term.Vocabulary {
	t.Helper()
	v, err := term.Default()
	require.NoError(t, err)
	return v
}

func errorList(t *testing.T, err error) errors.ErrorList {
	t.Helper()
	require.Error(t, err)
	var list errors.ErrorList
	require.True(t, stderrors.As(err, &list), "expected an ErrorList, got %T", err)
	return list
}

func codes(list errors.ErrorList) []errors.ErrorCode {
	out := make([]errors.ErrorCode, len(list))
	for i, d := range list {
		out[i] = d.Code
	}
	return out
}

func TestDefaultCorpus(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Groups(), 38)
	assert.Equal(t, 227, c.Len())
	assert.Len(t, c.Rewrites(), 227)

	names := c.Names()
	assert.Equal(t, "erf-rules", names[0])
	assert.Equal(t, "commutativity", names[len(names)-1])

	g, ok := c.Group("id-reduce-fp-safe")
	require.True(t, ok)
	assert.Equal(t, FPSafe, g.Soundness)
	assert.Equal(t, "+-lft-identity", g.Rewrites[0].Name)
	assert.Equal(t, "(+ 0 ?a)", g.Rewrites[0].LHS.String())
}

func TestDefaultCorpusSoundness(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		group string
		want  Soundness
	}{
		{"trig-reduce-fp-sound", FPSafe},
		{"trig-reduce-fp-sound-nan", FPSafeNaN},
		{"pow-reduce-fp-safe-nan", FPSafeNaN},
		{"log-distribute-fp-safe", FPSafe},
		{"squares-reduce-fp-sound", FPSafe},
		{"associativity", Exact},
		{"complex-number-basics", Exact},
	}
	for _, tt := range tests {
		g, ok := c.Group(tt.group)
		require.True(t, ok, tt.group)
		assert.Equal(t, tt.want, g.Soundness, tt.group)
	}

	for _, s := range AllSoundness() {
		sub := c.BySoundness(s)
		assert.NotEmpty(t, sub.Groups(), s)
		for _, g := range sub.Groups() {
			assert.Equal(t, s, g.Soundness)
		}
	}
	assert.Equal(t, c.Len(), c.BySoundness().Len())
	assert.Equal(t, c.Len(), c.BySoundness(AllSoundness()...).Len())
}

func TestSelectKeepsRegistrationOrder(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	sub, err := c.Select("commutativity", "counting")
	require.NoError(t, err)
	assert.Equal(t, []string{"counting", "commutativity"}, sub.Names())
	assert.Equal(t, 3, sub.Len())

	all, err := c.Select()
	require.NoError(t, err)
	assert.Equal(t, c.Len(), all.Len())
}

func TestSelectUnknownGroups(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.Select("counting", "nope", "also-nope")
	list := errorList(t, err)
	assert.Equal(t, []errors.ErrorCode{errors.ErrUnknownGroup, errors.ErrUnknownGroup}, codes(list))
	assert.Equal(t, "nope", list[0].Source)
}

func TestNewCorpusCollectsAllProblems(t *testing.T) {
	defs := []Definition{
		{Name: "a", Soundness: Exact, Rules: []Rule{
			{"ok", "(+ ?a 0)", "?a"},
			{"unbound", "(+ ?a 0)", "(* ?a ?b)"},
			{"bad-lhs", "(+ ?a", "?a"},
			{"bad-rhs", "(+ ?a 0)", "(frobnicate ?a)"},
			{"bare", "?a", "(* ?a 1)"},
		}},
		{Name: "b", Soundness: FPSafe, Rules: []Rule{
			{"ok", "(* ?a 1)", "?a"},
		}},
		{Name: "a", Soundness: Exact},
	}

	_, err := NewCorpus(defs, vocab(t))
	list := errorList(t, err)

	assert.Equal(t, []errors.ErrorCode{
		errors.ErrUnboundVariable,
		errors.ErrInvalidPattern,
		errors.ErrInvalidPattern,
		errors.ErrBareVariablePattern,
		errors.ErrDuplicateRule,
		errors.ErrDuplicateGroup,
	}, codes(list))

	badLHS := list[1]
	assert.Equal(t, "bad-lhs", badLHS.Source)
	require.NotNil(t, badLHS.Cause)
	assert.Equal(t, errors.ErrUnclosedList, badLHS.Cause.Code)

	badRHS := list[2]
	require.NotNil(t, badRHS.Cause)
	assert.Equal(t, errors.ErrNotAnOperator, badRHS.Cause.Code)
}

func TestNewCorpusEmpty(t *testing.T) {
	c, err := NewCorpus(nil, vocab(t))
	require.NoError(t, err)
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Rewrites())
}

func TestBuiltinReturnsCopy(t *testing.T) {
	defs := Builtin()
	defs[0].Name = "changed"
	defs[0].Rules[0].LHS = "(garbage"

	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "erf-rules", c.Names()[0])
}

func TestParseSoundness(t *testing.T) {
	for _, s := range AllSoundness() {
		got, err := ParseSoundness(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseSoundness("sound-ish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fp-safe-nan")
}
