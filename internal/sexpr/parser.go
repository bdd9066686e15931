package sexpr

import (
	"math/big"
	"strings"

	"github.com/conduit-lang/eggmath/internal/errors"
	"github.com/conduit-lang/eggmath/internal/term"
)

// ParseExpr parses a single expression. Atoms resolve in order: vocabulary
// name, exact rational literal, variable. Pattern variables are rejected.
func ParseExpr(text string, vocab *term.Vocabulary) (*term.Expr, error) {
	p, err := parse(text, vocab, false)
	if err != nil {
		return nil, err
	}
	e, _ := p.Ground()
	return e, nil
}

// ParsePattern parses a rewrite pattern, where ?name atoms are pattern
// variables.
func ParsePattern(text string, vocab *term.Vocabulary) (*term.Pattern, error) {
	return parse(text, vocab, true)
}

// Parser builds a pattern tree from tokens, stopping at the first error
type Parser struct {
	source   string
	tokens   []Token
	current  int
	vocab    *term.Vocabulary
	patterns bool
}

func parse(text string, vocab *term.Vocabulary, patterns bool) (*term.Pattern, error) {
	p := &Parser{
		source:   text,
		tokens:   NewLexer(text).ScanTokens(),
		vocab:    vocab,
		patterns: patterns,
	}

	if p.peek().Type == TokenEOF {
		return nil, errors.NewEmptyInput()
	}

	result, diag := p.parseTerm()
	if diag != nil {
		return nil, p.withSnippet(diag)
	}

	if next := p.peek(); next.Type != TokenEOF {
		return nil, p.withSnippet(errors.NewTrailingInput(location(next), next.Lexeme))
	}
	return result, nil
}

func (p *Parser) parseTerm() (*term.Pattern, *errors.Diagnostic) {
	tok := p.advance()
	switch tok.Type {
	case TokenLParen:
		return p.parseList(tok)
	case TokenRParen:
		return nil, errors.NewUnexpectedClose(location(tok))
	case TokenAtom:
		return p.parseAtom(tok)
	}
	return nil, errors.NewEmptyInput()
}

func (p *Parser) parseList(open Token) (*term.Pattern, *errors.Diagnostic) {
	head := p.peek()
	switch head.Type {
	case TokenRParen:
		return nil, errors.NewEmptyList(location(open))
	case TokenEOF:
		return nil, errors.NewUnclosedList(location(open))
	case TokenLParen:
		return nil, errors.NewNotAnOperator(location(head), "(")
	}
	p.advance()

	op, ok := p.operator(head.Lexeme)
	if !ok {
		return nil, errors.NewNotAnOperator(location(head), head.Lexeme)
	}

	var children []*term.Pattern
	for p.peek().Type != TokenRParen {
		if p.peek().Type == TokenEOF {
			return nil, errors.NewUnclosedList(location(open))
		}
		child, diag := p.parseTerm()
		if diag != nil {
			return nil, diag
		}
		children = append(children, child)
	}
	p.advance()

	return term.POp(op, children...), nil
}

// operator resolves a list head. Only fixed-name operators can be applied.
func (p *Parser) operator(name string) (term.Op, bool) {
	op, ok := p.vocab.Lookup(name)
	if !ok || op.IsLeaf() {
		return term.Op{}, false
	}
	return op, true
}

func (p *Parser) parseAtom(tok Token) (*term.Pattern, *errors.Diagnostic) {
	text := tok.Lexeme

	if strings.HasPrefix(text, "?") {
		if !p.patterns {
			return nil, errors.NewUnexpectedVariable(location(tok), text)
		}
		if len(text) == 1 {
			return nil, errors.NewInvalidVariable(location(tok))
		}
		return term.PVar(text[1:]), nil
	}

	if op, ok := p.vocab.Lookup(text); ok {
		return term.POp(op), nil
	}

	if looksNumeric(text) {
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			return nil, errors.NewInvalidNumber(location(tok), text)
		}
		return term.POp(term.Op{Kind: term.Constant, Value: r}), nil
	}

	return term.POp(term.Sym(text)), nil
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.current]
	if tok.Type != TokenEOF {
		p.current++
	}
	return tok
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) withSnippet(d *errors.Diagnostic) *errors.Diagnostic {
	if d.Location.Line < 1 {
		return d
	}
	lines := strings.Split(p.source, "\n")
	if d.Location.Line > len(lines) {
		return d
	}
	return d.WithSnippet(strings.TrimRight(lines[d.Location.Line-1], "\r"))
}

func location(tok Token) errors.Location {
	return errors.Location{Line: tok.Line, Column: tok.Column}
}

// looksNumeric reports whether an atom is written as a number: an optional
// sign followed by a digit, or by '.' and a digit.
func looksNumeric(text string) bool {
	s := strings.TrimLeft(text, "+-")
	if len(text)-len(s) > 1 || s == "" {
		return false
	}
	if isDigit(s[0]) {
		return true
	}
	return len(s) > 1 && s[0] == '.' && isDigit(s[1])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
