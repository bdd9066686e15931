package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestLexer_Structure(t *testing.T) {
	tokens := NewLexer("(+ x (neg 1/2))").ScanTokens()

	assert.Equal(t, []TokenType{
		TokenLParen, TokenAtom, TokenAtom,
		TokenLParen, TokenAtom, TokenAtom, TokenRParen,
		TokenRParen, TokenEOF,
	}, types(tokens))
	assert.Equal(t, "1/2", tokens[5].Lexeme)
}

func TestLexer_Positions(t *testing.T) {
	tokens := NewLexer("(sqrt\n  ?x)").ScanTokens()
	require.Len(t, tokens, 5)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)
	assert.Equal(t, 2, tokens[1].Column)
	assert.Equal(t, 2, tokens[2].Line)
	assert.Equal(t, 3, tokens[2].Column)
	assert.Equal(t, "?x", tokens[2].Lexeme)
	assert.Equal(t, 5, tokens[3].Column)
}

func TestLexer_Comments(t *testing.T) {
	tokens := NewLexer("; leading\n(exp x) ; trailing").ScanTokens()
	assert.Equal(t, []TokenType{TokenLParen, TokenAtom, TokenAtom, TokenRParen, TokenEOF}, types(tokens))
	assert.Equal(t, 2, tokens[0].Line)
}

func TestLexer_OperatorAtoms(t *testing.T) {
	tokens := NewLexer("+.c real->posit <= -1").ScanTokens()
	var lexemes []string
	for _, tok := range tokens[:len(tokens)-1] {
		lexemes = append(lexemes, tok.Lexeme)
	}
	assert.Equal(t, []string{"+.c", "real->posit", "<=", "-1"}, lexemes)
}

func TestLexer_Empty(t *testing.T) {
	tokens := NewLexer("  \t\n").ScanTokens()
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenEOF, tokens[0].Type)
}
