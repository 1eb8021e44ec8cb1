package filter

// Matcher decides whether a single expression identifier matches.
// Implementations may carry their own state, e.g. the tag set of a
// test, and may fail when an identifier violates their validity rules.
type Matcher interface {
	Match(ident string) (bool, error)
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(ident string) (bool, error)

func (f MatcherFunc) Match(ident string) (bool, error) {
	return f(ident)
}

// Rule is implemented by every node of a compiled filter expression.
type Rule interface {
	// Eval evaluates this node against the given matcher.
	Eval(m Matcher) (bool, error)
}
