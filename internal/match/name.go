package match

import (
	"strings"

	"github.com/testsieve/testsieve/internal/filter"
)

// ProcessPattern rewrites a name-expression identifier for matching:
// the escape sequence `\_` becomes a literal underscore while every
// other underscore becomes a space. All other characters pass through
// unchanged.
//
// This lets an identifier like `can_login` match a test named
// "user can login", while `user\_id` matches a name literally
// containing "user_id". The scanner kept the escape intact for exactly
// this step.
func ProcessPattern(pattern string) string {
	var processed strings.Builder

	for i := 0; i < len(pattern); i++ {
		switch {
		case pattern[i] == '\\' && i+1 < len(pattern) && pattern[i+1] == '_':
			processed.WriteByte('_')
			i++
		case pattern[i] == '_':
			processed.WriteByte(' ')
		default:
			processed.WriteByte(pattern[i])
		}
	}

	return processed.String()
}

// NewNameMatcher returns a matcher that reports whether a processed
// identifier occurs in the given full test name, ignoring case.
// An empty identifier matches any name.
func NewNameMatcher(testName string) filter.Matcher {
	name := strings.ToLower(testName)

	return filter.MatcherFunc(func(ident string) (bool, error) {
		return strings.Contains(name, strings.ToLower(ProcessPattern(ident))), nil
	})
}

// NewTestMatcher returns a matcher dispatching per identifier:
// identifiers carrying the '@' prefix are matched against the tag set,
// all others as substrings of the test name. This allows a single
// expression to mix tag and name identifiers.
func NewTestMatcher(tags TagSet, testName string) filter.Matcher {
	tagMatcher := NewTagMatcher(tags)
	nameMatcher := NewNameMatcher(testName)

	return filter.MatcherFunc(func(ident string) (bool, error) {
		if strings.HasPrefix(ident, "@") {
			return tagMatcher.Match(ident)
		}

		return nameMatcher.Match(ident)
	})
}
