package filter

// Identifier is a leaf rule matching a single identifier against the
// matcher. The identifier text is kept raw, escape sequences included;
// decoding them is the matcher's business.
type Identifier struct {
	Value string
}

// Eval asks the matcher whether the identifier matches.
func (i *Identifier) Eval(m Matcher) (bool, error) {
	return m.Match(i.Value)
}

// Not negates its operand.
type Not struct {
	Operand Rule
}

func (n *Not) Eval(m Matcher) (bool, error) {
	matched, err := n.Operand.Eval(m)
	if err != nil {
		return false, err
	}

	return !matched, nil
}

// And matches when both of its operands match.
// The right operand is not evaluated once the left one failed.
type And struct {
	Left  Rule
	Right Rule
}

func (a *And) Eval(m Matcher) (bool, error) {
	matched, err := a.Left.Eval(m)
	if err != nil || !matched {
		return false, err
	}

	return a.Right.Eval(m)
}

// Or matches when at least one of its operands matches.
// The right operand is not evaluated once the left one matched.
type Or struct {
	Left  Rule
	Right Rule
}

func (o *Or) Eval(m Matcher) (bool, error) {
	matched, err := o.Left.Eval(m)
	if err != nil {
		return false, err
	}

	if matched {
		return true, nil
	}

	return o.Right.Eval(m)
}

// Assert interface compliance.
var (
	_ Rule = (*Identifier)(nil)
	_ Rule = (*Not)(nil)
	_ Rule = (*And)(nil)
	_ Rule = (*Or)(nil)
)
