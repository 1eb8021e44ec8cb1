package filter

import (
	"fmt"
	"strings"
)

// ParseError is returned for syntactically invalid filter expressions.
//
// Source is the trimmed expression being parsed, Found the offending
// token text (or "EOF"), and Offset the zero-based character position
// the error refers to, suitable for caret-style diagnostics.
type ParseError struct {
	Source  string
	Found   string
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid filter '%s', unexpected %s at pos %d: %s", e.Source, e.Found, e.Offset, e.Message)
}

// Parser is a recursive descent parser for filter expressions.
//
// The grammar, from lowest to highest binding:
//
//	expression := orExpr? EOF
//	orExpr     := andExpr ( 'or' andExpr )*
//	andExpr    := notExpr ( 'and' notExpr )*
//	notExpr    := 'not' notExpr | '(' orExpr ')' | identifier
//
// 'and' and 'or' associate to the left, 'not' binds tightest.
type Parser struct {
	source string
	tokens []Token
	pos    int
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse scans and parses the given filter expression into a rule tree.
// Leading and trailing whitespace is ignored; input that is empty after
// trimming yields a nil rule without error, meaning "no filter".
func (p *Parser) Parse(expression string) (Rule, error) {
	p.source = strings.TrimSpace(expression)
	p.pos = 0

	tokens, err := Scan(p.source)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens

	if p.check(TokenEnd) {
		return nil, nil
	}

	rule, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	// Anything left over, e.g. a second expression without an operator
	// or a stray closing parenthesis, is an error.
	if !p.check(TokenEnd) {
		return nil, p.unexpected(p.peek(), "expected end of expression")
	}

	return rule, nil
}

func (p *Parser) parseOr() (Rule, error) {
	rule, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.match(TokenOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		rule = &Or{Left: rule, Right: right}
	}

	return rule, nil
}

func (p *Parser) parseAnd() (Rule, error) {
	rule, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.match(TokenAnd) {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		rule = &And{Left: rule, Right: right}
	}

	return rule, nil
}

func (p *Parser) parseNot() (Rule, error) {
	if p.match(TokenNot) {
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		return &Not{Operand: operand}, nil
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Rule, error) {
	if p.match(TokenLParen) {
		rule, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if !p.match(TokenRParen) {
			return nil, p.unexpected(p.peek(), "expected ')'")
		}

		return rule, nil
	}

	if p.check(TokenIdent) {
		return &Identifier{Value: p.advance().Text}, nil
	}

	return nil, p.unexpected(p.peek(), "expected identifier")
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
// The terminating end token is never consumed.
func (p *Parser) advance() Token {
	token := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}

	return token
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEnd
}

// check returns whether the current token is of the given kind.
func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

// match consumes the current token if it is of the given kind.
func (p *Parser) match(kind TokenKind) bool {
	if !p.check(kind) {
		return false
	}

	p.advance()
	return true
}

func (p *Parser) unexpected(token Token, message string) error {
	found := token.Text
	if token.Kind == TokenEnd {
		found = "EOF"
	}

	return &ParseError{Source: p.source, Found: found, Message: message, Offset: token.Offset}
}
