package filter

import (
	"strings"
)

// Expression is a compiled filter expression.
// Compile once, then evaluate against any number of matchers.
type Expression struct {
	source string
	rule   Rule
}

// Compile parses the given filter expression.
// An expression that is empty after trimming compiles to the match-all
// expression; see Evaluate.
func Compile(expression string) (*Expression, error) {
	rule, err := NewParser().Parse(expression)
	if err != nil {
		return nil, err
	}

	return &Expression{source: strings.TrimSpace(expression), rule: rule}, nil
}

// Source returns the trimmed expression text this Expression was compiled from.
func (e *Expression) Source() string {
	return e.source
}

// Rule returns the root of the compiled rule tree, or nil for the
// match-all expression.
func (e *Expression) Rule() Rule {
	return e.rule
}

// Evaluate evaluates the expression against the given matcher.
// The match-all expression returns true without consulting the matcher.
func (e *Expression) Evaluate(m Matcher) (bool, error) {
	if e.rule == nil {
		return true, nil
	}

	return e.rule.Eval(m)
}
