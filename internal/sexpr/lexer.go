// Package sexpr reads s-expression text into expressions and rewrite
// patterns. It is the only place in the system that parses.
package sexpr

// Lexer splits s-expression text into tokens. A ';' starts a comment that
// runs to the end of the line.
//
// Lexer instances are not safe for concurrent use.
type Lexer struct {
	source  string
	start   int
	current int
	line    int
	column  int
	tokens  []Token
}

// NewLexer creates a Lexer for source
func NewLexer(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
	}
}

// ScanTokens tokenizes the whole source. The last token is always TokenEOF.
// Lexing cannot fail; every character is either structure or part of an atom.
func (l *Lexer) ScanTokens() []Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TokenEOF,
		Line:   l.line,
		Column: l.column,
	})
	return l.tokens
}

func (l *Lexer) scanToken() {
	line, column := l.line, l.column
	c := l.advance()

	switch {
	case c == '(':
		l.addToken(TokenLParen, line, column)
	case c == ')':
		l.addToken(TokenRParen, line, column)
	case c == ';':
		for !l.isAtEnd() && l.peek() != '\n' {
			l.advance()
		}
	case c == '\n':
		l.line++
		l.column = 1
	case isSpace(c):
	default:
		for !l.isAtEnd() && isAtomByte(l.peek()) {
			l.advance()
		}
		l.addToken(TokenAtom, line, column)
	}
}

func (l *Lexer) addToken(tokenType TokenType, line, column int) {
	l.tokens = append(l.tokens, Token{
		Type:   tokenType,
		Lexeme: l.source[l.start:l.current],
		Line:   line,
		Column: column,
	})
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	l.column++
	return c
}

func (l *Lexer) peek() byte {
	return l.source[l.current]
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v'
}

func isAtomByte(c byte) bool {
	return !isSpace(c) && c != '(' && c != ')' && c != ';'
}
