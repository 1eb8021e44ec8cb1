package filter

// TokenKind is a type used for grouping the token types produced by the scanner.
type TokenKind int

// List of the supported token kinds.
const (
	TokenLParen TokenKind = iota
	TokenRParen
	TokenAnd
	TokenOr
	TokenNot
	TokenIdent
	TokenEnd
)

// String returns a friendly name of this token kind used to output in error messages.
func (k TokenKind) String() string {
	switch k {
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenAnd:
		return "'and'"
	case TokenOr:
		return "'or'"
	case TokenNot:
		return "'not'"
	case TokenIdent:
		return "identifier"
	case TokenEnd:
		return "EOF"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit of a filter expression.
// Offset is the zero-based position of the token's first character in
// the trimmed source string. Tokens are read-only once scanned.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}
