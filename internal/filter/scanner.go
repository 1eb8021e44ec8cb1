package filter

import (
	"strings"
)

// Scan tokenizes the given filter expression into a flat token stream.
// The stream is always terminated by a single TokenEnd positioned at
// the end of the source. Scan fails on the first malformed character
// sequence; there is no recovery.
func Scan(source string) ([]Token, error) {
	var tokens []Token

	pos := 0
	for pos < len(source) {
		switch ch := source[pos]; {
		case isSpace(ch):
			pos++
		case ch == '(':
			tokens = append(tokens, Token{Kind: TokenLParen, Text: "(", Offset: pos})
			pos++
		case ch == ')':
			tokens = append(tokens, Token{Kind: TokenRParen, Text: ")", Offset: pos})
			pos++
		default:
			token, next, err := scanWord(source, pos)
			if err != nil {
				return nil, err
			}

			tokens = append(tokens, token)
			pos = next
		}
	}

	return append(tokens, Token{Kind: TokenEnd, Offset: len(source)}), nil
}

// scanWord greedily scans one identifier or keyword token starting at
// the given position, stopping at whitespace or a parenthesis.
//
// The two-character sequence `\_` is copied through verbatim as a unit.
// Resolving the escape is left to the name matcher, which is the only
// place that knows whether an underscore is meant literally.
func scanWord(source string, start int) (Token, int, error) {
	var text strings.Builder

	pos := start
	for pos < len(source) {
		ch := source[pos]
		if isSpace(ch) || ch == '(' || ch == ')' {
			break
		}

		if ch == '\\' && pos+1 < len(source) && source[pos+1] == '_' {
			text.WriteString(`\_`)
			pos += 2
			continue
		}

		text.WriteByte(ch)
		pos++
	}

	word := text.String()
	if word == "" {
		// Unreachable given the stopping rule above, but a zero-width
		// token would loop the scanner forever, so fail loudly.
		return Token{}, 0, &ParseError{Source: source, Found: string(source[start]), Message: "empty identifier", Offset: start}
	}

	kind := TokenIdent
	// Keywords are matched against the whole lower-cased token only; the
	// token keeps its original casing either way.
	switch strings.ToLower(word) {
	case "and":
		kind = TokenAnd
	case "or":
		kind = TokenOr
	case "not":
		kind = TokenNot
	}

	return Token{Kind: kind, Text: word, Offset: start}, pos, nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}
