package sexpr

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// TokenEOF marks the end of the token stream
	TokenEOF TokenType = iota
	// TokenLParen is '('
	TokenLParen
	// TokenRParen is ')'
	TokenRParen
	// TokenAtom is any run of characters that are not whitespace or parentheses
	TokenAtom
)

var tokenNames = map[TokenType]string{
	TokenEOF:    "EOF",
	TokenLParen: "(",
	TokenRParen: ")",
	TokenAtom:   "ATOM",
}

// String returns the string representation of a token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Token is a lexical token with its position (1-indexed)
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

// String returns a readable form for debugging
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}
